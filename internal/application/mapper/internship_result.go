package mapper

import (
	"internship-service/internal/application/common"
	"internship-service/internal/domain/entities"
)

// NewInternshipResultFromEntity attaches creator when it is known.
func NewInternshipResultFromEntity(internship *entities.Internship, creator *entities.User) *common.InternshipResult {
	skills := make([]string, len(internship.Skills))
	copy(skills, internship.Skills)
	return &common.InternshipResult{
		Id:          internship.Id,
		CreatedAt:   internship.CreatedAt,
		UpdatedAt:   internship.UpdatedAt,
		Title:       internship.Title,
		Description: internship.Description,
		Company:     internship.Company,
		Stipend:     internship.Stipend,
		Location:    internship.Location,
		Type:        string(internship.Type),
		Openings:    internship.Openings,
		Skills:      skills,
		CreatedById: internship.CreatedBy,
		CreatedBy:   NewContactResultFromEntity(creator),
	}
}

func NewInternshipResultsFromEntities(internships []*entities.Internship, creators map[string]*entities.User) []*common.InternshipResult {
	results := make([]*common.InternshipResult, 0, len(internships))
	for _, internship := range internships {
		results = append(results, NewInternshipResultFromEntity(internship, creators[internship.CreatedBy]))
	}
	return results
}
