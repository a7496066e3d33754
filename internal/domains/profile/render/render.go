// Package render turns profiles and query results into the plain-text form
// served to text clients. Output is byte-stable for a given input.
package render

import (
	"fmt"
	"strings"

	"profile-backend/internal/domains/profile/model"
)

const (
	NoProfile  = "No profile found"
	NoProjects = "No projects found"
	NoSkills   = "No skills found"
	NoResults  = "No results"

	resultSeparator = "\n\n---\n\n"
)

// Profile renders a single profile. A nil profile renders NoProfile.
func Profile(p *model.Profile) string {
	if p == nil {
		return NoProfile
	}

	lines := []string{
		p.Name,
		p.Email,
		"",
		"Education: " + p.Education,
		"Skills: " + strings.Join(p.Skills, ", "),
		"",
		"Work:",
	}
	if body := workSection(p.Work); body != "" {
		lines = append(lines, body)
	}

	lines = append(lines, "", "Projects:")
	if body := projectSection(p.Projects); body != "" {
		lines = append(lines, body)
	}

	lines = append(lines, "", "Links:")
	lines = append(lines, linkLines(p.Links)...)

	return strings.Join(lines, "\n")
}

func workSection(work []model.Work) string {
	entries := make([]string, 0, len(work))
	for _, w := range work {
		entries = append(entries, fmt.Sprintf("%s at %s (%s)\n\n%s", w.Role, w.Company, w.Period, w.Summary))
	}
	return strings.Join(entries, "\n\n")
}

func projectSection(projects []model.Project) string {
	entries := make([]string, 0, len(projects))
	for _, pr := range projects {
		var b strings.Builder
		b.WriteString(pr.Title)
		if pr.When != "" {
			b.WriteString(" – ")
			b.WriteString(pr.When)
		}
		b.WriteString("\n\n")
		b.WriteString(pr.Description)
		if pr.HasProjectGitHub() {
			b.WriteString("\nGitHub: ")
			b.WriteString(pr.Links.GitHub)
		}
		entries = append(entries, b.String())
	}
	return strings.Join(entries, "\n\n")
}

// linkLines keeps the github, linkedin, portfolio order regardless of input.
func linkLines(l model.Links) []string {
	var out []string
	if l.GitHub != "" {
		out = append(out, "GitHub: "+l.GitHub)
	}
	if l.LinkedIn != "" {
		out = append(out, "LinkedIn: "+l.LinkedIn)
	}
	if l.Portfolio != "" {
		out = append(out, "Portfolio: "+l.Portfolio)
	}
	return out
}

// ProjectMatches renders skill-filtered projects, one block per match.
func ProjectMatches(items []model.ProjectMatch) string {
	if len(items) == 0 {
		return NoProjects
	}
	blocks := make([]string, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, fmt.Sprintf("Profile: %s\n- %s\n  %s", it.ProfileName, it.Project.Title, it.Project.Description))
	}
	return strings.Join(blocks, "\n\n")
}

// SkillCounts renders one "skill: count" line per item in the order given.
func SkillCounts(items []model.SkillCount) string {
	if len(items) == 0 {
		return NoSkills
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s: %d", it.Skill, it.Count))
	}
	return strings.Join(lines, "\n")
}

// SearchResults renders every profile and joins them with a "---" separator.
func SearchResults(profiles []model.Profile) string {
	if len(profiles) == 0 {
		return NoResults
	}
	blocks := make([]string, 0, len(profiles))
	for i := range profiles {
		blocks = append(blocks, Profile(&profiles[i]))
	}
	return strings.Join(blocks, resultSeparator)
}
