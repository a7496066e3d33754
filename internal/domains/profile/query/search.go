package query

import (
	"fmt"
	"strings"

	"profile-backend/internal/domains/profile/model"
)

// Search keeps, in their original order, the profiles whose name, any skill,
// or any project title or description contains query (case-insensitive).
func Search(profiles []model.Profile, query string) ([]model.Profile, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("%w: q", model.ErrMissingParameter)
	}

	out := make([]model.Profile, 0)
	for _, p := range profiles {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// matches expects q already lower-cased.
func matches(p model.Profile, q string) bool {
	if contains(p.Name, q) {
		return true
	}
	for _, s := range p.Skills {
		if contains(s, q) {
			return true
		}
	}
	for _, pr := range p.Projects {
		if contains(pr.Title, q) || contains(pr.Description, q) {
			return true
		}
	}
	return false
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
