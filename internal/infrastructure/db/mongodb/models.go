package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"internship-service/internal/apperr"
	"internship-service/internal/domain/entities"
)

type userDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Role      string               `bson:"role"`
	Bookmarks []primitive.ObjectID `bson:"bookmarks"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type internshipDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Company     string             `bson:"company"`
	Stipend     int64              `bson:"stipend"`
	Location    string             `bson:"location"`
	Type        string             `bson:"type"`
	Openings    int                `bson:"openings"`
	Skills      []string           `bson:"skills"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type applicationDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	InternshipID primitive.ObjectID `bson:"internshipId"`
	UserID       primitive.ObjectID `bson:"userId"`
	ResumeURL    string             `bson:"resumeUrl"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// objectID reports false for ids that cannot name a stored document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func requireObjectID(field, id string) (primitive.ObjectID, error) {
	oid, ok := objectID(id)
	if !ok {
		return primitive.NilObjectID, apperr.NewValidationError("invalid "+field, map[string]string{field: "invalid id"})
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

func (d *userDocument) toEntity() *entities.User {
	return &entities.User{
		Id:        d.ID.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Role:      entities.Role(d.Role),
		Bookmarks: hexIDs(d.Bookmarks),
	}
}

func (d *internshipDocument) toEntity() *entities.Internship {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return &entities.Internship{
		Id:          d.ID.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Title:       d.Title,
		Description: d.Description,
		Company:     d.Company,
		Stipend:     d.Stipend,
		Location:    d.Location,
		Type:        entities.InternshipType(d.Type),
		Openings:    d.Openings,
		Skills:      skills,
		CreatedBy:   d.CreatedBy.Hex(),
	}
}

func (d *applicationDocument) toEntity() *entities.Application {
	return &entities.Application{
		Id:           d.ID.Hex(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		InternshipID: d.InternshipID.Hex(),
		UserID:       d.UserID.Hex(),
		ResumeURL:    d.ResumeURL,
		Status:       entities.ApplicationStatus(d.Status),
	}
}
