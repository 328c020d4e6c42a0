package team

import "strings"

const dedupKeySeparator = "|"

// DedupKey is the composite identity used to hide near-identical listings.
// Teams without any identifying field key on their own id.
func DedupKey(t Team) string {
	name := t.TeamName
	if strings.TrimSpace(name) == "" {
		name = t.LegacyName
	}

	parts := []string{
		normalizeKeyPart(name),
		normalizeKeyPart(t.ManagerName),
		normalizeKeyPart(t.ContactEmail),
		strings.TrimSpace(t.UploaderID),
	}

	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return "id:" + t.ID
	}
	return strings.Join(kept, dedupKeySeparator)
}

// Dedupe keeps the first team seen per DedupKey. Given createdAt-descending
// input the most recent duplicate wins. Hidden teams are not touched.
func Dedupe(teams []Team) []Team {
	seen := make(map[string]struct{}, len(teams))
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		key := DedupKey(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// UnionByID merges query results, keeping the first occurrence of each id.
func UnionByID(lists ...[]Team) []Team {
	seen := make(map[string]struct{})
	out := make([]Team, 0)
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func normalizeKeyPart(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
