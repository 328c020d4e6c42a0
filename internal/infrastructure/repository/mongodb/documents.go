package mongodb

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson"
)

var rosterKinds = participant.Kinds

func rosterCollection(kind participant.Kind) string {
	return "team_" + kind.Collection()
}

type profileDocument struct {
	ID          string    `bson:"_id"`
	Email       string    `bson:"email,omitempty"`
	DisplayName string    `bson:"displayName,omitempty"`
	Role        string    `bson:"role,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d profileDocument) toDomain() user.Profile {
	return user.Profile{ID: d.ID, Email: d.Email, DisplayName: d.DisplayName, Role: d.Role, UpdatedAt: d.UpdatedAt}
}

// teamDocument carries "approved" as a projection of the status so older
// readers of the collection keep working; it is never read back.
type teamDocument struct {
	ID            string    `bson:"_id"`
	TeamName      string    `bson:"teamName,omitempty"`
	LegacyName    string    `bson:"name,omitempty"`
	Region        string    `bson:"region,omitempty"`
	Category      string    `bson:"category,omitempty"`
	ManagerName   string    `bson:"managerName,omitempty"`
	ContactEmail  string    `bson:"contactEmail,omitempty"`
	ContactPhone  string    `bson:"contactPhone,omitempty"`
	PaymentStatus string    `bson:"paymentStatus"`
	Approved      bool      `bson:"approved"`
	UploaderID    string    `bson:"uploaderId,omitempty"`
	ManagerID     string    `bson:"managerId,omitempty"`
	CoachID       string    `bson:"coachId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty"`
}

func teamToDocument(t team.Team) teamDocument {
	return teamDocument{
		ID:            t.ID,
		TeamName:      t.TeamName,
		LegacyName:    t.LegacyName,
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

func (d teamDocument) toDomain() team.Team {
	return team.Team{
		ID:            d.ID,
		TeamName:      d.TeamName,
		LegacyName:    d.LegacyName,
		Region:        d.Region,
		Category:      d.Category,
		ManagerName:   d.ManagerName,
		ContactEmail:  d.ContactEmail,
		ContactPhone:  d.ContactPhone,
		PaymentStatus: team.ParsePaymentStatus(d.PaymentStatus),
		UploaderID:    d.UploaderID,
		ManagerID:     d.ManagerID,
		CoachID:       d.CoachID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type messageDocument struct {
	ID        string            `bson:"_id"`
	TeamID    string            `bson:"teamId"`
	Type      string            `bson:"type"`
	Text      string            `bson:"text"`
	Author    string            `bson:"author,omitempty"`
	Metadata  map[string]string `bson:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"createdAt"`
}

type proofDocument struct {
	ID          string    `bson:"_id"`
	TeamID      string    `bson:"teamId"`
	Text        string    `bson:"text,omitempty"`
	URL         string    `bson:"url,omitempty"`
	SubmittedBy string    `bson:"submittedBy,omitempty"`
	SubmittedAt time.Time `bson:"submittedAt"`
}

// rosterDocument stores the back-reference under its kind-specific name
// (playerId, coachId, managerId), which lands in Ref.
type rosterDocument struct {
	ID       string            `bson:"_id"`
	TeamID   string            `bson:"teamId"`
	FullName string            `bson:"fullName,omitempty"`
	Email    string            `bson:"email,omitempty"`
	Phone    string            `bson:"phone,omitempty"`
	IDNumber string            `bson:"idNumber,omitempty"`
	Area     string            `bson:"area,omitempty"`
	Role     string            `bson:"role,omitempty"`
	UserID   string            `bson:"userId,omitempty"`
	Details  map[string]string `bson:"details,omitempty"`
	AddedAt  time.Time         `bson:"addedAt"`
	Ref      bson.M            `bson:",inline"`
}

func rosterToDocument(e team.MemberEntry) rosterDocument {
	return rosterDocument{
		ID:       e.ID,
		TeamID:   e.TeamID,
		FullName: e.FullName,
		Email:    e.Email,
		Phone:    e.Phone,
		IDNumber: e.IDNumber,
		Area:     e.Area,
		Role:     e.Role,
		UserID:   e.UserID,
		Details:  e.Details,
		AddedAt:  e.AddedAt,
		Ref:      bson.M{e.Kind.BackReferenceField(): e.EntityID},
	}
}

func (d rosterDocument) toDomain(kind participant.Kind) team.MemberEntry {
	entityID, _ := d.Ref[kind.BackReferenceField()].(string)
	return team.MemberEntry{
		ID:       d.ID,
		TeamID:   d.TeamID,
		Kind:     kind,
		EntityID: entityID,
		FullName: d.FullName,
		Email:    d.Email,
		Phone:    d.Phone,
		IDNumber: d.IDNumber,
		Area:     d.Area,
		Role:     d.Role,
		UserID:   d.UserID,
		Details:  d.Details,
		AddedAt:  d.AddedAt,
	}
}

type participantDocument struct {
	ID           string            `bson:"_id"`
	Role         string            `bson:"role"`
	FullName     string            `bson:"fullName,omitempty"`
	Email        string            `bson:"email,omitempty"`
	Phone        string            `bson:"phone,omitempty"`
	IDNumber     string            `bson:"idNumber,omitempty"`
	Area         string            `bson:"area,omitempty"`
	Details      map[string]string `bson:"details,omitempty"`
	UserID       string            `bson:"userId,omitempty"`
	TeamID       string            `bson:"teamId,omitempty"`
	MigratedFrom string            `bson:"migratedFrom,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt"`
}

func participantToDocument(p participant.Participant) participantDocument {
	return participantDocument{
		ID:           p.ID,
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

func (d participantDocument) toDomain(kind participant.Kind) participant.Participant {
	return participant.Participant{
		ID:           d.ID,
		Kind:         kind,
		Role:         d.Role,
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		IDNumber:     d.IDNumber,
		Area:         d.Area,
		Details:      d.Details,
		UserID:       d.UserID,
		TeamID:       d.TeamID,
		MigratedFrom: d.MigratedFrom,
		CreatedAt:    d.CreatedAt,
	}
}

// legacyDocument reads the schemaless registrations collection. Fields the
// migration does not name explicitly are carried over as details.
type legacyDocument struct {
	ID        string    `bson:"_id"`
	Role      string    `bson:"role"`
	Team      string    `bson:"team"`
	TeamID    string    `bson:"teamId"`
	TeamName  string    `bson:"teamName"`
	FullName  string    `bson:"fullName"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	IDNumber  string    `bson:"idNumber"`
	Area      string    `bson:"area"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
	Rest      bson.M    `bson:",inline"`
}

func (d legacyDocument) toDomain() registration.Legacy {
	fullName := d.FullName
	if fullName == "" {
		fullName = d.Name
	}
	var details map[string]string
	for key, value := range d.Rest {
		switch v := value.(type) {
		case string:
			if details == nil {
				details = make(map[string]string)
			}
			details[key] = v
		case int32, int64, float64, bool:
			if details == nil {
				details = make(map[string]string)
			}
			details[key] = fmt.Sprint(v)
		}
	}
	return registration.Legacy{
		ID:        d.ID,
		Role:      d.Role,
		Team:      d.Team,
		TeamID:    d.TeamID,
		TeamName:  d.TeamName,
		FullName:  fullName,
		Email:     d.Email,
		Phone:     d.Phone,
		IDNumber:  d.IDNumber,
		Area:      d.Area,
		UserID:    d.UserID,
		Details:   details,
		CreatedAt: d.CreatedAt,
	}
}
