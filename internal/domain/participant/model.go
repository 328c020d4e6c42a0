package participant

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the role collection a participant lives in.
type Kind string

const (
	KindPlayer  Kind = "player"
	KindCoach   Kind = "coach"
	KindManager Kind = "manager"
)

var Kinds = []Kind{KindPlayer, KindCoach, KindManager}

func ParseKind(raw string) (Kind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimSuffix(value, "es")
	value = strings.TrimSuffix(value, "s")
	switch Kind(value) {
	case KindPlayer, KindCoach, KindManager:
		return Kind(value), nil
	default:
		return "", fmt.Errorf("unknown participant kind %q", raw)
	}
}

// Collection is the top-level collection name, e.g. "players".
func (k Kind) Collection() string {
	if k == KindCoach {
		return "coaches"
	}
	return string(k) + "s"
}

// BackReferenceField names the foreign key stored on sub-collection entries.
func (k Kind) BackReferenceField() string {
	return string(k) + "Id"
}

// Participant is the canonical player, coach or manager record. Details holds
// the role-specific form fields (position, experience, ...).
type Participant struct {
	ID           string
	Kind         Kind
	Role         string
	FullName     string
	Email        string
	Phone        string
	IDNumber     string
	Area         string
	Details      map[string]string
	UserID       string
	TeamID       string
	MigratedFrom string
	CreatedAt    time.Time
}

func (p Participant) Clone() Participant {
	out := p
	if p.Details != nil {
		out.Details = make(map[string]string, len(p.Details))
		for k, v := range p.Details {
			out.Details[k] = v
		}
	}
	return out
}
