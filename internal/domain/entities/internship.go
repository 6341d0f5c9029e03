package entities

import (
	"strings"
	"time"

	"internship-service/internal/apperr"
)

type InternshipType string

const (
	InternshipTypeRemote InternshipType = "remote"
	InternshipTypeOnsite InternshipType = "onsite"
	InternshipTypeHybrid InternshipType = "hybrid"
)

func (t InternshipType) Valid() bool {
	switch t {
	case InternshipTypeRemote, InternshipTypeOnsite, InternshipTypeHybrid:
		return true
	}
	return false
}

type Internship struct {
	Id          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Description string
	Company     string
	Stipend     int64
	Location    string
	Type        InternshipType
	Openings    int
	Skills      []string
	CreatedBy   string
}

// InternshipPatch holds a partial update. Nil fields are left untouched.
type InternshipPatch struct {
	Title       *string
	Description *string
	Company     *string
	Stipend     *int64
	Location    *string
	Type        *InternshipType
	Openings    *int
	Skills      *[]string
}

func NewInternship(title, description, company string, stipend int64, location string, internshipType InternshipType, openings int, skills []string, createdBy string) *Internship {
	now := time.Now().UTC()
	return &Internship{
		CreatedAt:   now,
		UpdatedAt:   now,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Company:     strings.TrimSpace(company),
		Stipend:     stipend,
		Location:    strings.TrimSpace(location),
		Type:        internshipType,
		Openings:    openings,
		Skills:      normalizeSkills(skills),
		CreatedBy:   createdBy,
	}
}

func (i *Internship) validate() error {
	fields := map[string]string{}
	if i.Title == "" {
		fields["title"] = "required"
	}
	if i.Description == "" {
		fields["description"] = "required"
	}
	if i.Company == "" {
		fields["company"] = "required"
	}
	if i.Location == "" {
		fields["location"] = "required"
	}
	if !i.Type.Valid() {
		fields["type"] = "must be remote, onsite or hybrid"
	}
	if i.Openings < 1 {
		fields["openings"] = "must be at least 1"
	}
	if i.Stipend < 0 {
		fields["stipend"] = "must not be negative"
	}
	if i.CreatedBy == "" {
		fields["created_by"] = "required"
	}
	if len(fields) > 0 {
		return apperr.NewValidationError("invalid internship", fields)
	}
	return nil
}

func (i *Internship) IsOwnedBy(userID string) bool {
	return i.CreatedBy != "" && i.CreatedBy == userID
}

// ApplyPatch merges the patch and re-validates the result.
func (i *Internship) ApplyPatch(patch InternshipPatch) error {
	if patch.Title != nil {
		i.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		i.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Company != nil {
		i.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Stipend != nil {
		i.Stipend = *patch.Stipend
	}
	if patch.Location != nil {
		i.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Type != nil {
		i.Type = *patch.Type
	}
	if patch.Openings != nil {
		i.Openings = *patch.Openings
	}
	if patch.Skills != nil {
		i.Skills = normalizeSkills(*patch.Skills)
	}
	i.UpdatedAt = time.Now().UTC()
	return i.validate()
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	return out
}
