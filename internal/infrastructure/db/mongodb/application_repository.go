package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"internship-service/internal/apperr"
	"internship-service/internal/domain/entities"
	"internship-service/internal/domain/repositories"
)

type ApplicationRepo struct {
	client *Client
}

func NewApplicationRepo(client *Client) repositories.ApplicationRepository {
	return &ApplicationRepo{client: client}
}

func (r *ApplicationRepo) Create(ctx context.Context, application *entities.Application) (*entities.Application, error) {
	internshipID, err := requireObjectID("internship_id", application.InternshipID)
	if err != nil {
		return nil, err
	}
	userID, err := requireObjectID("user_id", application.UserID)
	if err != nil {
		return nil, err
	}
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return nil, err
	}

	doc := applicationDocument{
		InternshipID: internshipID,
		UserID:       userID,
		ResumeURL:    application.ResumeURL,
		Status:       string(application.Status),
		CreatedAt:    application.CreatedAt,
		UpdatedAt:    application.UpdatedAt,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.NewError(apperr.CodeConflict, "you have already applied for this internship", err)
		}
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toEntity(), nil
}

func (r *ApplicationRepo) findOne(ctx context.Context, filter bson.M) (*entities.Application, error) {
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return nil, err
	}

	var doc applicationDocument
	err = coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ApplicationRepo) FindById(ctx context.Context, id string) (*entities.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ApplicationRepo) FindByInternshipAndUser(ctx context.Context, internshipID, userID string) (*entities.Application, error) {
	iid, ok := objectID(internshipID)
	if !ok {
		return nil, nil
	}
	uid, ok := objectID(userID)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"internshipId": iid, "userId": uid})
}

func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]*entities.Application, error) {
	uid, ok := objectID(userID)
	if !ok {
		return []*entities.Application{}, nil
	}
	return r.find(ctx, bson.M{"userId": uid})
}

func (r *ApplicationRepo) ListAll(ctx context.Context) ([]*entities.Application, error) {
	return r.find(ctx, bson.M{})
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) (*entities.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc applicationDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return err
	}
	_, err = coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *ApplicationRepo) DeleteByInternship(ctx context.Context, internshipID string) (int64, error) {
	oid, ok := objectID(internshipID)
	if !ok {
		return 0, nil
	}
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.M{"internshipId": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ApplicationRepo) CountByStatus(ctx context.Context) (repositories.ApplicationCounts, error) {
	var counts repositories.ApplicationCounts
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return counts, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return counts, err
	}
	var groups []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return counts, err
	}
	for _, g := range groups {
		counts.Total += g.Count
		switch entities.ApplicationStatus(g.Status) {
		case entities.ApplicationStatusPending:
			counts.Pending = g.Count
		case entities.ApplicationStatusAccepted:
			counts.Accepted = g.Count
		case entities.ApplicationStatusRejected:
			counts.Rejected = g.Count
		}
	}
	return counts, nil
}

func (r *ApplicationRepo) find(ctx context.Context, filter bson.M) ([]*entities.Application, error) {
	coll, err := r.client.collection(ctx, applicationsCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []applicationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	applications := make([]*entities.Application, 0, len(docs))
	for i := range docs {
		applications = append(applications, docs[i].toEntity())
	}
	return applications, nil
}
