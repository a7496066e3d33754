// Package query holds the read-side computations over a profile snapshot:
// skill ranking, skill-filtered projects and free-text search. Every function
// is pure and safe to call concurrently on a shared snapshot.
package query

import (
	"fmt"
	"sort"
	"strings"

	"profile-backend/internal/domains/profile/model"
)

// TopSkills counts every trimmed, non-empty skill across all profiles.
// Counting is case-sensitive. The result is ordered by count descending;
// equal counts keep the order in which the skill was first seen.
func TopSkills(profiles []model.Profile) []model.SkillCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, p := range profiles {
		for _, raw := range p.Skills {
			skill := strings.TrimSpace(raw)
			if skill == "" {
				continue
			}
			if _, seen := counts[skill]; !seen {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}

	out := make([]model.SkillCount, len(order))
	for i, skill := range order {
		out[i] = model.SkillCount{Skill: skill, Count: counts[skill]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ProjectsBySkill returns every project whose own skill list contains skill,
// compared case-insensitively as a whole string.
func ProjectsBySkill(profiles []model.Profile, skill string) ([]model.ProjectMatch, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, fmt.Errorf("%w: skill", model.ErrMissingParameter)
	}

	out := make([]model.ProjectMatch, 0)
	for _, p := range profiles {
		for _, pr := range p.Projects {
			if hasSkill(pr.Skills, skill) {
				out = append(out, model.ProjectMatch{ProfileName: p.Name, Project: pr})
			}
		}
	}
	return out, nil
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
