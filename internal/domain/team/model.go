package team

import (
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
)

// PaymentStatus is the canonical payment/approval state of a team.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusSubmitted PaymentStatus = "submitted"
	StatusVerified  PaymentStatus = "verified"
	StatusRejected  PaymentStatus = "rejected"
)

// legacyStatusApproved is written by older admin flows and means verified.
const legacyStatusApproved = "approved"

// ParsePaymentStatus normalizes stored status strings. Unknown and empty
// values read as pending.
func ParsePaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusSubmitted):
		return StatusSubmitted
	case string(StatusVerified), legacyStatusApproved:
		return StatusVerified
	case string(StatusRejected):
		return StatusRejected
	default:
		return StatusPending
	}
}

// Team is a registered team document. LegacyName is the older "name" field
// some registration forms wrote instead of TeamName.
type Team struct {
	ID            string
	TeamName      string
	LegacyName    string
	Region        string
	Category      string
	ManagerName   string
	ContactEmail  string
	ContactPhone  string
	PaymentStatus PaymentStatus
	UploaderID    string
	ManagerID     string
	CoachID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Approved is the read-only projection of the status enum.
func (t Team) Approved() bool {
	return t.PaymentStatus == StatusVerified
}

// Label is the human name of the team, falling back to the id.
func (t Team) Label() string {
	if v := strings.TrimSpace(t.TeamName); v != "" {
		return v
	}
	if v := strings.TrimSpace(t.LegacyName); v != "" {
		return v
	}
	return t.ID
}

// Field names a queryable team attribute.
type Field string

const (
	FieldTeamName     Field = "teamName"
	FieldLegacyName   Field = "name"
	FieldContactEmail Field = "contactEmail"
	FieldUploaderID   Field = "uploaderId"
	FieldManagerID    Field = "managerId"
	FieldCoachID      Field = "coachId"
)

func (f Field) Valid() bool {
	switch f {
	case FieldTeamName, FieldLegacyName, FieldContactEmail, FieldUploaderID, FieldManagerID, FieldCoachID:
		return true
	default:
		return false
	}
}

// Patch is a plain field update. Nil fields are left untouched.
type Patch struct {
	PaymentStatus *PaymentStatus
	ManagerName   *string
	ContactEmail  *string
	ContactPhone  *string
	UpdatedAt     time.Time
}

func (p Patch) Apply(t Team) Team {
	if p.PaymentStatus != nil {
		t.PaymentStatus = *p.PaymentStatus
	}
	if p.ManagerName != nil {
		t.ManagerName = *p.ManagerName
	}
	if p.ContactEmail != nil {
		t.ContactEmail = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		t.ContactPhone = *p.ContactPhone
	}
	if !p.UpdatedAt.IsZero() {
		t.UpdatedAt = p.UpdatedAt
	}
	return t
}

type MessageType string

const (
	MessageCreated MessageType = "created"
	MessageNote    MessageType = "note"
	MessageStatus  MessageType = "status"
	MessageProof   MessageType = "proof"
)

// Message is an append-only team event.
type Message struct {
	ID        string
	TeamID    string
	Type      MessageType
	Text      string
	Author    string
	Metadata  map[string]string
	CreatedAt time.Time
}

type PaymentProof struct {
	ID          string
	TeamID      string
	Text        string
	URL         string
	SubmittedBy string
	SubmittedAt time.Time
}

// MemberEntry is the denormalized copy of a participant stored under
// teams/{id}/{kind}s. EntityID points back at the canonical record.
type MemberEntry struct {
	ID       string
	TeamID   string
	Kind     participant.Kind
	EntityID string
	FullName string
	Email    string
	Phone    string
	IDNumber string
	Area     string
	Role     string
	UserID   string
	Details  map[string]string
	AddedAt  time.Time
}

// NewMemberEntry snapshots p for the roster of teamID.
func NewMemberEntry(id, teamID string, p participant.Participant, addedAt time.Time) MemberEntry {
	snapshot := p.Clone()
	return MemberEntry{
		ID:       id,
		TeamID:   teamID,
		Kind:     p.Kind,
		EntityID: p.ID,
		FullName: snapshot.FullName,
		Email:    snapshot.Email,
		Phone:    snapshot.Phone,
		IDNumber: snapshot.IDNumber,
		Area:     snapshot.Area,
		Role:     snapshot.Role,
		UserID:   snapshot.UserID,
		Details:  snapshot.Details,
		AddedAt:  addedAt,
	}
}
