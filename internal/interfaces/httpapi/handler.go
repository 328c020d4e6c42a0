package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type Handler struct {
	registrationService *usecase.RegistrationService
	linkageService      *usecase.LinkageService
	duplicateGuard      *usecase.DuplicateGuard
	teamResolver        *usecase.TeamResolver
	paymentService      *usecase.PaymentService
	teamAdminService    *usecase.TeamAdminService
	dashboardService    *usecase.DashboardService
	reconcileService    *usecase.ReconcileService
	migrationService    *usecase.MigrationService
	profileService      *usecase.ProfileService
	logger              *logging.Logger
	validator           *validator.Validate
	upgrader            websocket.Upgrader
}

func NewHandler(
	registrationService *usecase.RegistrationService,
	linkageService *usecase.LinkageService,
	duplicateGuard *usecase.DuplicateGuard,
	teamResolver *usecase.TeamResolver,
	paymentService *usecase.PaymentService,
	teamAdminService *usecase.TeamAdminService,
	dashboardService *usecase.DashboardService,
	reconcileService *usecase.ReconcileService,
	migrationService *usecase.MigrationService,
	profileService *usecase.ProfileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		registrationService: registrationService,
		linkageService:      linkageService,
		duplicateGuard:      duplicateGuard,
		teamResolver:        teamResolver,
		paymentService:      paymentService,
		teamAdminService:    teamAdminService,
		dashboardService:    dashboardService,
		reconcileService:    reconcileService,
		migrationService:    migrationService,
		profileService:      profileService,
		logger:              logger,
		validator:           validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Staff access is checked by RequireAuth and RequireAdmin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context) (*user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return &principal, nil
}

func kindFromPath(r *http.Request) (participant.Kind, error) {
	kind, err := participant.ParseKind(r.PathValue("kind"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return kind, nil
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
