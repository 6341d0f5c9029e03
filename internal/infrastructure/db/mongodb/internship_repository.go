package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
)

type InternshipRepo struct {
	client *Client
}

func NewInternshipRepo(client *Client) repositories.InternshipRepository {
	return &InternshipRepo{client: client}
}

func (r *InternshipRepo) Create(ctx context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error) {
	createdBy, err := requireObjectID("created_by", internship.CreatedBy)
	if err != nil {
		return nil, err
	}
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return nil, err
	}

	doc := internshipDocument{
		Title:       internship.Title,
		Description: internship.Description,
		Company:     internship.Company,
		Stipend:     internship.Stipend,
		Location:    internship.Location,
		Type:        string(internship.Type),
		Openings:    internship.Openings,
		Skills:      internship.Skills,
		CreatedBy:   createdBy,
		CreatedAt:   internship.CreatedAt,
		UpdatedAt:   internship.UpdatedAt,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toEntity(), nil
}

func (r *InternshipRepo) FindById(ctx context.Context, id string) (*entities.Internship, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return nil, err
	}

	var doc internshipDocument
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *InternshipRepo) FindByIds(ctx context.Context, ids []string) ([]*entities.Internship, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*entities.Internship{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *InternshipRepo) Update(ctx context.Context, internship *entities.ValidatedInternship) (*entities.Internship, error) {
	oid, ok := objectID(internship.Id)
	if !ok {
		return nil, nil
	}
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       internship.Title,
		"description": internship.Description,
		"company":     internship.Company,
		"stipend":     internship.Stipend,
		"location":    internship.Location,
		"type":        string(internship.Type),
		"openings":    internship.Openings,
		"skills":      internship.Skills,
		"updatedAt":   internship.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc internshipDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *InternshipRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return err
	}
	_, err = coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *InternshipRepo) List(ctx context.Context, filter entities.InternshipFilter) ([]*entities.Internship, error) {
	return r.find(ctx, internshipQuery(filter), internshipFindOptions(filter))
}

func (r *InternshipRepo) Count(ctx context.Context) (int64, error) {
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{})
}

func (r *InternshipRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.Internship, error) {
	coll, err := r.client.collection(ctx, internshipsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []internshipDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	internships := make([]*entities.Internship, 0, len(docs))
	for i := range docs {
		internships = append(internships, docs[i].toEntity())
	}
	return internships, nil
}
