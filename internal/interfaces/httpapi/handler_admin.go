package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

func parseListTeamsQuery(r *http.Request) (usecase.ListTeamsInput, error) {
	status, err := team.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		return usecase.ListTeamsInput{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	dedupe, err := parseBoolQuery(r, "dedupe")
	if err != nil {
		return usecase.ListTeamsInput{}, err
	}
	return usecase.ListTeamsInput{Status: status, Dedupe: dedupe}, nil
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	input, err := parseListTeamsQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.dashboardService.ListTeams(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.dashboardService.GetTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListTeamsByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByEmail")
	defer span.End()

	teams, err := h.duplicateGuard.FindTeamsByEmail(ctx, r.URL.Query().Get("email"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveTeam")
	defer span.End()

	identifier := strings.TrimSpace(r.URL.Query().Get("identifier"))
	found, ok, err := h.teamResolver.ResolveTeam(ctx, identifier)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := resolveDTO{Identifier: identifier, Found: ok}
	if ok {
		dto := teamToDTO(found)
		out.Team = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateTeamContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamContact")
	defer span.End()

	var req updateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	updated, err := h.teamAdminService.UpdateContact(ctx, teamID, usecase.ContactUpdate{
		ManagerName:  req.ManagerName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team contact failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func (h *Handler) VerifyTeam(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, "httpapi.Handler.VerifyTeam", h.paymentService.Verify)
}

func (h *Handler) RejectTeam(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, "httpapi.Handler.RejectTeam", h.paymentService.Reject)
}

func (h *Handler) ApproveTeam(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, "httpapi.Handler.ApproveTeam", h.setApproval(true))
}

func (h *Handler) RevokeTeam(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, "httpapi.Handler.RevokeTeam", h.setApproval(false))
}

type statusChange func(ctx context.Context, actor *user.Principal, teamID string) (team.Team, error)

func (h *Handler) setApproval(approved bool) statusChange {
	return func(ctx context.Context, actor *user.Principal, teamID string) (team.Team, error) {
		return h.paymentService.SetApproval(ctx, actor, teamID, approved)
	}
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request, spanName string, change statusChange) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	updated, err := change(ctx, principal, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "change team status failed", "team_id", teamID, "actor", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func (h *Handler) BulkApproveTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BulkApproveTeams")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req bulkApproveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.paymentService.BulkApprove(ctx, principal, req.TeamIDs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bulkApproveDTO{
		Approved: result.Approved,
		Failed:   result.Failed,
	})
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Reconcile")
	defer span.End()

	dryRun, err := parseBoolQuery(r, "dry_run")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.reconcileService.Sweep(ctx, dryRun)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile sweep failed", "dry_run", dryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) MigrateRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MigrateRegistrations")
	defer span.End()

	dryRun, err := parseBoolQuery(r, "dry_run")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.migrationService.MigrateRegistrations(ctx, dryRun)
	if err != nil {
		h.logger.ErrorContext(ctx, "migrate registrations failed", "dry_run", dryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
