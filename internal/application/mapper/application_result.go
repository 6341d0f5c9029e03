package mapper

import (
	"internship-service/internal/application/common"
	"internship-service/internal/domain/entities"
)

func NewApplicationResultFromEntity(application *entities.Application, internship *common.InternshipResult, applicant *entities.User) *common.ApplicationResult {
	return &common.ApplicationResult{
		Id:           application.Id,
		CreatedAt:    application.CreatedAt,
		UpdatedAt:    application.UpdatedAt,
		InternshipId: application.InternshipID,
		UserId:       application.UserID,
		ResumeURL:    application.ResumeURL,
		Status:       string(application.Status),
		Internship:   internship,
		Applicant:    NewContactResultFromEntity(applicant),
	}
}
