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

type UserRepo struct {
	client *Client
}

func NewUserRepo(client *Client) repositories.UserRepository {
	return &UserRepo{client: client}
}

func (r *UserRepo) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	coll, err := r.client.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := userDocument{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Role:      string(user.Role),
		Bookmarks: objectIDs(user.Bookmarks),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.NewError(apperr.CodeConflict, "user with this email already exists", err)
		}
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toEntity(), nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	coll, err := r.client.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepo) FindById(ctx context.Context, id string) (*entities.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": entities.NormalizeEmail(email)})
}

func (r *UserRepo) FindByIds(ctx context.Context, ids []string) ([]*entities.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*entities.User{}, nil
	}
	coll, err := r.client.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toEntity())
	}
	return users, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	oid, ok := objectID(user.Id)
	if !ok {
		return nil, nil
	}
	coll, err := r.client.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"updatedAt": user.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.NewError(apperr.CodeConflict, "email already in use", err)
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// ToggleBookmark uses an update pipeline so membership is flipped inside one document write.
func (r *UserRepo) ToggleBookmark(ctx context.Context, userID, internshipID string) (bool, error) {
	uid, ok := objectID(userID)
	if !ok {
		return false, apperr.NewError(apperr.CodeNotFound, "user not found", nil)
	}
	iid, err := requireObjectID("internship_id", internshipID)
	if err != nil {
		return false, err
	}
	coll, err := r.client.collection(ctx, usersCollection)
	if err != nil {
		return false, err
	}

	current := bson.D{{Key: "$ifNull", Value: bson.A{"$bookmarks", bson.A{}}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "bookmarks", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{iid, current}}},
				bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: current},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", iid}}}},
				}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{current, bson.A{iid}}}},
			}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"bookmarks": 1})

	var doc struct {
		Bookmarks []primitive.ObjectID `bson:"bookmarks"`
	}
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": uid}, pipeline, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, apperr.NewError(apperr.CodeNotFound, "user not found", nil)
	}
	if err != nil {
		return false, err
	}
	for _, id := range doc.Bookmarks {
		if id == iid {
			return true, nil
		}
	}
	return false, nil
}
