package model

import "time"

// Profile is a candidate's portfolio record, keyed by Email.
// Slice fields are never nil once a profile has passed through Normalize.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Education string    `json:"education" db:"education"`
	Skills    []string  `json:"skills" db:"skills"`
	Projects  []Project `json:"projects" db:"projects"`
	Work      []Work    `json:"work" db:"work"`
	Links     Links     `json:"links" db:"links"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Work is one entry of the work history, kept in the order it was entered.
type Work struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Period  string `json:"period"`
	Summary string `json:"summary"`
}

type Project struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	When        string       `json:"when,omitempty"`
	Skills      []string     `json:"skills"`
	Links       ProjectLinks `json:"links"`
}

type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
}

type Links struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// ProjectMatch pairs a project with the name of the profile that owns it.
type ProjectMatch struct {
	ProfileName string  `json:"profileName"`
	Project     Project `json:"project"`
}

// SkillCount is one row of the skill-frequency ranking.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Normalize replaces nil slices with empty ones so JSON never carries null
// and downstream code does not have to tell "missing" from "empty".
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Work == nil {
		p.Work = []Work{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Skills == nil {
			p.Projects[i].Skills = []string{}
		}
	}
}

// HasProjectGitHub reports whether the project carries its own github link.
func (p Project) HasProjectGitHub() bool {
	return p.Links.GitHub != ""
}
