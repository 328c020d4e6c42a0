package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerRegistrationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.RegisterTeam)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, handler.RegisterParticipant(participant.KindPlayer)))
	mux.Handle("POST /v1/coaches", RequireAuth(verifier, handler.RegisterParticipant(participant.KindCoach)))
	mux.Handle("POST /v1/managers", RequireAuth(verifier, handler.RegisterParticipant(participant.KindManager)))
	mux.Handle("GET /v1/me/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/{kind}", RequireAuth(verifier, http.HandlerFunc(handler.AttachToTeam)))
	mux.Handle("GET /v1/teams/{teamID}/members/{kind}", RequireAuth(verifier, http.HandlerFunc(handler.ListMembers)))
	mux.Handle("POST /v1/teams/{teamID}/proofs", RequireAuth(verifier, http.HandlerFunc(handler.SubmitProof)))
	mux.Handle("GET /v1/teams/{teamID}/proofs", RequireAuth(verifier, http.HandlerFunc(handler.ListProofs)))
	mux.Handle("POST /v1/teams/{teamID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.AddMessage)))
	mux.Handle("GET /v1/teams/{teamID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListMessages)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, adminUserIDs []string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(adminUserIDs, h))
	}

	mux.Handle("GET /v1/admin/teams", admin(handler.ListTeams))
	mux.Handle("GET /v1/admin/teams/stream", admin(handler.StreamTeams))
	mux.Handle("GET /v1/admin/teams/by-email", admin(handler.ListTeamsByEmail))
	mux.Handle("GET /v1/admin/teams/resolve", admin(handler.ResolveTeam))
	mux.Handle("GET /v1/admin/teams/{teamID}", admin(handler.GetTeam))
	mux.Handle("PATCH /v1/admin/teams/{teamID}", admin(handler.UpdateTeamContact))
	mux.Handle("POST /v1/admin/teams/{teamID}/verify", admin(handler.VerifyTeam))
	mux.Handle("POST /v1/admin/teams/{teamID}/reject", admin(handler.RejectTeam))
	mux.Handle("POST /v1/admin/teams/{teamID}/approve", admin(handler.ApproveTeam))
	mux.Handle("POST /v1/admin/teams/{teamID}/revoke", admin(handler.RevokeTeam))
	mux.Handle("POST /v1/admin/teams/approve", admin(handler.BulkApproveTeams))
	mux.Handle("POST /v1/admin/reconcile", admin(handler.Reconcile))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.Reconcile)))
	mux.Handle("POST /v1/internal/jobs/migrate-registrations", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.MigrateRegistrations)))
}
