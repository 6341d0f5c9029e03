package mongodb

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexModels lists the indexes every collection needs. The two unique indexes back the
// email and one-application-per-internship rules.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		internshipsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_at")},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}, Options: options.Index().SetName("created_by")},
		},
		applicationsCollection: {
			{
				Keys:    bson.D{{Key: "internshipId", Value: 1}, {Key: "userId", Value: 1}},
				Options: options.Index().SetName("internship_user_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("user_created_at"),
			},
		},
	}
}

func (c *Client) EnsureIndexes(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	for collection, models := range indexModels() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		log.Debug().Str("collection", collection).Strs("indexes", names).Msg("Indexes ensured")
	}
	return nil
}
