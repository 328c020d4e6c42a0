package team

import (
	"fmt"
	"strings"
)

// StatusFilter selects teams on dashboards. FilterApproved matches verified
// teams, which includes the legacy "approved" status.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterSubmitted StatusFilter = "submitted"
	FilterApproved  StatusFilter = "approved"
	FilterRejected  StatusFilter = "rejected"
)

func ParseStatusFilter(raw string) (StatusFilter, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterPending), string(FilterSubmitted), string(FilterRejected):
		return StatusFilter(value), nil
	case string(FilterApproved), string(StatusVerified):
		return FilterApproved, nil
	default:
		return "", fmt.Errorf("unknown status filter %q", raw)
	}
}

func (f StatusFilter) Match(t Team) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterApproved:
		return t.Approved()
	default:
		return string(t.PaymentStatus) == string(f)
	}
}

func FilterByStatus(teams []Team, f StatusFilter) []Team {
	if f == FilterAll || f == "" {
		return teams
	}
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
