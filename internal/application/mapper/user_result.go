package mapper

import (
	"internship-service/internal/application/common"
	"internship-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:        user.Id,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
	}
}

func NewContactResultFromEntity(user *entities.User) *common.ContactResult {
	if user == nil {
		return nil
	}
	return &common.ContactResult{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
	}
}
