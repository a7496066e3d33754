package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"profile-backend/internal/domains/profile/model"
)

func fullProfile() *model.Profile {
	return &model.Profile{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Education: "BSc Mathematics",
		Skills:    []string{"go", "rust", "sql"},
		Work: []model.Work{
			{Role: "Engineer", Company: "Acme", Period: "2020-2022", Summary: "Built the billing pipeline."},
			{Role: "Intern", Company: "Initech", Period: "2019", Summary: "Wrote tests."},
		},
		Projects: []model.Project{
			{
				Title:       "Engine",
				Description: "An analytical engine.",
				When:        "2021",
				Skills:      []string{"rust"},
				Links:       model.ProjectLinks{GitHub: "https://github.com/ada/engine"},
			},
			{Title: "Notes", Description: "Lecture notes.", Skills: []string{}},
		},
		Links: model.Links{
			Portfolio: "https://ada.dev",
			GitHub:    "https://github.com/ada",
		},
	}
}

func TestProfile_FullLayout(t *testing.T) {
	want := "Ada Lovelace\n" +
		"ada@example.com\n" +
		"\n" +
		"Education: BSc Mathematics\n" +
		"Skills: go, rust, sql\n" +
		"\n" +
		"Work:\n" +
		"Engineer at Acme (2020-2022)\n" +
		"\n" +
		"Built the billing pipeline.\n" +
		"\n" +
		"Intern at Initech (2019)\n" +
		"\n" +
		"Wrote tests.\n" +
		"\n" +
		"Projects:\n" +
		"Engine – 2021\n" +
		"\n" +
		"An analytical engine.\n" +
		"GitHub: https://github.com/ada/engine\n" +
		"\n" +
		"Notes\n" +
		"\n" +
		"Lecture notes.\n" +
		"\n" +
		"Links:\n" +
		"GitHub: https://github.com/ada\n" +
		"Portfolio: https://ada.dev"

	assert.Equal(t, want, Profile(fullProfile()))
}

func TestProfile_EmptySectionsKeepHeaders(t *testing.T) {
	p := &model.Profile{Name: "Bo", Email: "bo@example.com"}
	p.Normalize()

	want := "Bo\nbo@example.com\n\nEducation: \nSkills: \n\nWork:\n\nProjects:\n\nLinks:"
	assert.Equal(t, want, Profile(p))
	assert.NotContains(t, Profile(p), "undefined")
}

func TestProfile_Nil(t *testing.T) {
	assert.Equal(t, "No profile found", Profile(nil))
}

func TestProfile_Idempotent(t *testing.T) {
	p := fullProfile()
	assert.Equal(t, Profile(p), Profile(p))
}

func TestProjectMatches(t *testing.T) {
	items := []model.ProjectMatch{
		{ProfileName: "Ada", Project: model.Project{Title: "X", Description: "first"}},
		{ProfileName: "Bo", Project: model.Project{Title: "Y", Description: "second"}},
	}

	want := "Profile: Ada\n- X\n  first\n\nProfile: Bo\n- Y\n  second"
	assert.Equal(t, want, ProjectMatches(items))
	assert.Equal(t, "No projects found", ProjectMatches(nil))
}

func TestSkillCounts(t *testing.T) {
	items := []model.SkillCount{{Skill: "go", Count: 2}, {Skill: "rust", Count: 1}}

	assert.Equal(t, "go: 2\nrust: 1", SkillCounts(items))
	assert.Equal(t, "No skills found", SkillCounts([]model.SkillCount{}))
}

func TestSearchResults(t *testing.T) {
	a := model.Profile{Name: "A", Email: "a@x.io"}
	b := model.Profile{Name: "B", Email: "b@x.io"}

	got := SearchResults([]model.Profile{a, b})

	assert.Equal(t, Profile(&a)+"\n\n---\n\n"+Profile(&b), got)
	assert.Equal(t, "No results", SearchResults(nil))
}
