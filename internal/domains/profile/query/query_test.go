package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-backend/internal/domains/profile/model"
)

func scenarioProfiles() []model.Profile {
	return []model.Profile{
		{
			Name:   "Ada",
			Skills: []string{"rust", "go"},
			Projects: []model.Project{
				{Title: "X", Description: "compiler", Skills: []string{"rust"}},
			},
		},
		{
			Name:     "Bo",
			Skills:   []string{"go"},
			Projects: []model.Project{},
		},
	}
}

func TestTopSkills_Scenario(t *testing.T) {
	got := TopSkills(scenarioProfiles())

	assert.Equal(t, []model.SkillCount{
		{Skill: "go", Count: 2},
		{Skill: "rust", Count: 1},
	}, got)
}

func TestTopSkills_TiesKeepFirstSeenOrder(t *testing.T) {
	profiles := []model.Profile{
		{Skills: []string{"c", "b", "a"}},
		{Skills: []string{"a", "d"}},
		{Skills: []string{"b"}},
	}

	got := TopSkills(profiles)

	assert.Equal(t, []model.SkillCount{
		{Skill: "b", Count: 2},
		{Skill: "a", Count: 2},
		{Skill: "c", Count: 1},
		{Skill: "d", Count: 1},
	}, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestTopSkills_TrimsSkipsBlankAndIsCaseSensitive(t *testing.T) {
	profiles := []model.Profile{
		{Skills: []string{" Go ", "go", "", "   ", "Go"}},
	}

	got := TopSkills(profiles)

	assert.Equal(t, []model.SkillCount{
		{Skill: "Go", Count: 2},
		{Skill: "go", Count: 1},
	}, got)
}

func TestTopSkills_CountsDuplicatesWithinProfile(t *testing.T) {
	got := TopSkills([]model.Profile{{Skills: []string{"sql", "sql"}}})
	assert.Equal(t, []model.SkillCount{{Skill: "sql", Count: 2}}, got)
}

func TestTopSkills_Empty(t *testing.T) {
	got := TopSkills(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProjectsBySkill_Scenario(t *testing.T) {
	got, err := ProjectsBySkill(scenarioProfiles(), "rust")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].ProfileName)
	assert.Equal(t, "X", got[0].Project.Title)
}

func TestProjectsBySkill_CaseInsensitiveExactMatch(t *testing.T) {
	profiles := []model.Profile{
		{
			Name: "Cy",
			Projects: []model.Project{
				{Title: "api", Skills: []string{"GoLang"}},
				{Title: "cli", Skills: []string{"go"}},
				{Title: "web", Skills: []string{"Go"}},
			},
		},
	}

	got, err := ProjectsBySkill(profiles, "GO")
	require.NoError(t, err)

	titles := make([]string, 0, len(got))
	for _, m := range got {
		titles = append(titles, m.Project.Title)
	}
	assert.Equal(t, []string{"cli", "web"}, titles)
}

func TestProjectsBySkill_IgnoresProfileLevelSkills(t *testing.T) {
	profiles := []model.Profile{
		{Name: "Bo", Skills: []string{"go"}, Projects: []model.Project{{Title: "p", Skills: []string{"sql"}}}},
	}

	got, err := ProjectsBySkill(profiles, "go")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProjectsBySkill_MissingSkill(t *testing.T) {
	for _, skill := range []string{"", "   "} {
		_, err := ProjectsBySkill(scenarioProfiles(), skill)
		assert.ErrorIs(t, err, model.ErrMissingParameter)
	}
}

func TestSearch_Scenario(t *testing.T) {
	profiles := scenarioProfiles()

	got, err := Search(profiles, "ada")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].Name)

	got, err = Search(profiles, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_MatchesEachField(t *testing.T) {
	profiles := []model.Profile{
		{Name: "Name Match"},
		{Name: "a", Skills: []string{"Kubernetes"}},
		{Name: "b", Projects: []model.Project{{Title: "KubeCtl wrapper"}}},
		{Name: "c", Projects: []model.Project{{Title: "t", Description: "runs on kube clusters"}}},
		{Name: "d", Skills: []string{"python"}},
	}

	got, err := Search(profiles, "KUBE")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	got, err = Search(profiles, "match")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Name Match", got[0].Name)
}

func TestSearch_MissingQuery(t *testing.T) {
	_, err := Search(scenarioProfiles(), "  ")
	assert.ErrorIs(t, err, model.ErrMissingParameter)
}
