package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req registerTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.registrationService.RegisterTeam(ctx, principal, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

// RegisterParticipant serves the player, coach and manager forms. A non-empty
// "team" field attaches the new record to that team.
func (h *Handler) RegisterParticipant(kind participant.Kind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterParticipant")
		defer span.End()

		principal, err := requirePrincipal(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		var req registerParticipantRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}

		created, err := h.registrationService.RegisterParticipant(ctx, kind, principal, req.toInput(), strings.TrimSpace(req.Team))
		if err != nil {
			h.logger.WarnContext(ctx, "register participant failed",
				"kind", kind,
				"team", req.Team,
				"user_id", principal.UserID,
				"error", err,
			)
			writeError(ctx, w, err)
			return
		}

		writeSuccess(ctx, w, http.StatusCreated, participantToDTO(created))
	})
}

func (h *Handler) AttachToTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AttachToTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	kind, err := kindFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req attachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if strings.TrimSpace(req.EntityID) != "" && req.Participant != nil {
		writeError(ctx, w, fmt.Errorf("%w: entity_id and participant are mutually exclusive", usecase.ErrInvalidInput))
		return
	}

	input := usecase.AttachInput{
		Kind:           kind,
		TeamIdentifier: r.PathValue("teamID"),
		EntityID:       strings.TrimSpace(req.EntityID),
		Identity:       principal,
	}
	if req.Participant != nil {
		payload := req.Participant.toInput()
		input.Payload = &payload
	}

	result, err := h.linkageService.AttachToTeam(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "attach to team failed",
			"kind", kind,
			"team", input.TeamIdentifier,
			"entity_id", input.EntityID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attachDTO{
		TeamID:       result.TeamID,
		Participant:  participantToDTO(result.Participant),
		Member:       memberToDTO(result.Entry),
		DetachedFrom: result.DetachedFrom,
	})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	kind, err := kindFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	members, err := h.linkageService.ListMembers(ctx, teamID, kind)
	if err != nil {
		h.logger.WarnContext(ctx, "list members failed", "team_id", teamID, "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.duplicateGuard.FindTeamsByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.profileService.Get(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}
