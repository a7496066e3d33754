package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// WRITE DTOs
// ========================================

// UpsertProfileRequest - POST /api/profile
// Creates the profile for Email or fully replaces the existing one.
type UpsertProfileRequest struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Education string    `json:"education,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Projects  []Project `json:"projects,omitempty"`
	Work      []Work    `json:"work,omitempty"`
	Links     Links     `json:"links,omitempty"`
}

func (r UpsertProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Projects),
		validation.Field(&r.Links),
	)
}

// ToEntity builds a normalized Profile from the request.
func (r *UpsertProfileRequest) ToEntity() *Profile {
	p := &Profile{
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Education: r.Education,
		Skills:    r.Skills,
		Projects:  r.Projects,
		Work:      r.Work,
		Links:     r.Links,
	}
	p.Normalize()
	return p
}

// UpdateProfileRequest - PUT /api/profile/:id
// All fields optional; only provided fields are applied.
type UpdateProfileRequest struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Education *string    `json:"education,omitempty"`
	Skills    *[]string  `json:"skills,omitempty"`
	Projects  *[]Project `json:"projects,omitempty"`
	Work      *[]Work    `json:"work,omitempty"`
	Links     *Links     `json:"links,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.Required.Error("name cannot be empty"),
				validation.Length(1, 255),
			),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil,
				validation.Required.Error("email cannot be empty"),
				is.EmailFormat.Error("invalid email format"),
			),
		),
		validation.Field(&r.Projects),
		validation.Field(&r.Links),
	)
}

// ApplyToEntity applies the provided fields to an existing profile.
func (r *UpdateProfileRequest) ApplyToEntity(p *Profile) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		p.Email = strings.TrimSpace(*r.Email)
	}
	if r.Education != nil {
		p.Education = *r.Education
	}
	if r.Skills != nil {
		p.Skills = *r.Skills
	}
	if r.Projects != nil {
		p.Projects = *r.Projects
	}
	if r.Work != nil {
		p.Work = *r.Work
	}
	if r.Links != nil {
		p.Links = *r.Links
	}
	p.Normalize()
}

// ========================================
// NESTED VALIDATION
// ========================================

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error("project title is required")),
		validation.Field(&p.Links),
	)
}

func (l ProjectLinks) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.GitHub, is.URL),
	)
}

func (l Links) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.GitHub, is.URL),
		validation.Field(&l.LinkedIn, is.URL),
		validation.Field(&l.Portfolio, is.URL),
	)
}

// ========================================
// PUBLISH DTOs
// ========================================

// PublishResponse - POST /api/profile/:id/publish
type PublishResponse struct {
	ProfileID int64  `json:"profileId"`
	Key       string `json:"key"`
	URL       string `json:"url"`
}

// UpsertResult reports whether an upsert created a new record.
type UpsertResult struct {
	Profile *Profile `json:"profile"`
	Created bool     `json:"created"`
}
