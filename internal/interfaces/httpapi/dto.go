package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type registerTeamRequest struct {
	TeamName     string `json:"team_name" validate:"required_without=LegacyName,max=120"`
	LegacyName   string `json:"name" validate:"omitempty,max=120"`
	Region       string `json:"region" validate:"omitempty,max=80"`
	Category     string `json:"category" validate:"omitempty,max=80"`
	ManagerName  string `json:"manager_name" validate:"omitempty,max=120"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=32"`
	Role         string `json:"role" validate:"omitempty,max=40"`
}

func (r registerTeamRequest) toInput() usecase.TeamInput {
	return usecase.TeamInput{
		TeamName:     r.TeamName,
		LegacyName:   r.LegacyName,
		Region:       r.Region,
		Category:     r.Category,
		ManagerName:  r.ManagerName,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Role:         r.Role,
	}
}

type participantRequest struct {
	Role     string            `json:"role" validate:"omitempty,max=40"`
	FullName string            `json:"full_name" validate:"required,max=160"`
	Email    string            `json:"email" validate:"omitempty,email"`
	Phone    string            `json:"phone" validate:"omitempty,max=32"`
	IDNumber string            `json:"id_number" validate:"omitempty,max=64"`
	Area     string            `json:"area" validate:"omitempty,max=80"`
	Details  map[string]string `json:"details"`
}

func (r participantRequest) toInput() usecase.ParticipantInput {
	return usecase.ParticipantInput{
		Role:     r.Role,
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		IDNumber: r.IDNumber,
		Area:     r.Area,
		Details:  r.Details,
	}
}

type registerParticipantRequest struct {
	participantRequest
	Team string `json:"team" validate:"omitempty,max=160"`
}

type attachRequest struct {
	EntityID    string              `json:"entity_id" validate:"required_without=Participant"`
	Participant *participantRequest `json:"participant" validate:"omitempty"`
}

type proofRequest struct {
	Text string `json:"text" validate:"required_without=URL,max=2000"`
	URL  string `json:"url" validate:"omitempty,url,max=2048"`
}

type messageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type updateContactRequest struct {
	ManagerName  *string `json:"manager_name" validate:"omitempty,max=120"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=32"`
}

type bulkApproveRequest struct {
	TeamIDs []string `json:"team_ids" validate:"required,min=1,max=500,dive,required"`
}

type teamDTO struct {
	ID            string    `json:"id"`
	TeamName      string    `json:"team_name"`
	Name          string    `json:"name,omitempty"`
	Label         string    `json:"label"`
	Region        string    `json:"region,omitempty"`
	Category      string    `json:"category,omitempty"`
	ManagerName   string    `json:"manager_name,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	Approved      bool      `json:"approved"`
	UploaderID    string    `json:"uploader_id,omitempty"`
	ManagerID     string    `json:"manager_id,omitempty"`
	CoachID       string    `json:"coach_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:            t.ID,
		TeamName:      t.TeamName,
		Name:          t.LegacyName,
		Label:         t.Label(),
		Region:        t.Region,
		Category:      t.Category,
		ManagerName:   t.ManagerName,
		ContactEmail:  t.ContactEmail,
		ContactPhone:  t.ContactPhone,
		PaymentStatus: string(t.PaymentStatus),
		Approved:      t.Approved(),
		UploaderID:    t.UploaderID,
		ManagerID:     t.ManagerID,
		CoachID:       t.CoachID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	return out
}

type participantDTO struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Role         string            `json:"role,omitempty"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	IDNumber     string            `json:"id_number,omitempty"`
	Area         string            `json:"area,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	UserID       string            `json:"user_id,omitempty"`
	TeamID       string            `json:"team_id,omitempty"`
	MigratedFrom string            `json:"migrated_from,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func participantToDTO(p participant.Participant) participantDTO {
	return participantDTO{
		ID:           p.ID,
		Kind:         string(p.Kind),
		Role:         p.Role,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		IDNumber:     p.IDNumber,
		Area:         p.Area,
		Details:      p.Details,
		UserID:       p.UserID,
		TeamID:       p.TeamID,
		MigratedFrom: p.MigratedFrom,
		CreatedAt:    p.CreatedAt,
	}
}

type memberDTO struct {
	ID       string            `json:"id"`
	TeamID   string            `json:"team_id"`
	Kind     string            `json:"kind"`
	EntityID string            `json:"entity_id"`
	FullName string            `json:"full_name"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	IDNumber string            `json:"id_number,omitempty"`
	Area     string            `json:"area,omitempty"`
	Role     string            `json:"role,omitempty"`
	UserID   string            `json:"user_id,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
	AddedAt  time.Time         `json:"added_at"`
}

func memberToDTO(m team.MemberEntry) memberDTO {
	return memberDTO{
		ID:       m.ID,
		TeamID:   m.TeamID,
		Kind:     string(m.Kind),
		EntityID: m.EntityID,
		FullName: m.FullName,
		Email:    m.Email,
		Phone:    m.Phone,
		IDNumber: m.IDNumber,
		Area:     m.Area,
		Role:     m.Role,
		UserID:   m.UserID,
		Details:  m.Details,
		AddedAt:  m.AddedAt,
	}
}

type attachDTO struct {
	TeamID       string         `json:"team_id"`
	Participant  participantDTO `json:"participant"`
	Member       memberDTO      `json:"member"`
	DetachedFrom string         `json:"detached_from,omitempty"`
}

type messageDTO struct {
	ID        string            `json:"id"`
	TeamID    string            `json:"team_id"`
	Type      string            `json:"type"`
	Text      string            `json:"text"`
	Author    string            `json:"author,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func messageToDTO(m team.Message) messageDTO {
	return messageDTO{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Type:      string(m.Type),
		Text:      m.Text,
		Author:    m.Author,
		Metadata:  m.Metadata,
		CreatedAt: m.CreatedAt,
	}
}

type proofDTO struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Text        string    `json:"text,omitempty"`
	URL         string    `json:"url,omitempty"`
	SubmittedBy string    `json:"submitted_by,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func proofToDTO(p team.PaymentProof) proofDTO {
	return proofDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Text:        p.Text,
		URL:         p.URL,
		SubmittedBy: p.SubmittedBy,
		SubmittedAt: p.SubmittedAt,
	}
}

type profileDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        string    `json:"role,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func profileToDTO(p user.Profile) profileDTO {
	return profileDTO{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		UpdatedAt:   p.UpdatedAt,
	}
}

type resolveDTO struct {
	Identifier string   `json:"identifier"`
	Found      bool     `json:"found"`
	Team       *teamDTO `json:"team,omitempty"`
}

type bulkApproveDTO struct {
	Approved []string          `json:"approved"`
	Failed   map[string]string `json:"failed,omitempty"`
}

type teamSnapshotDTO struct {
	Type  string    `json:"type"`
	Count int       `json:"count"`
	Teams []teamDTO `json:"teams"`
}
