package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"internship-service/internal/domain/entities"
)

// internshipQuery mirrors InternshipFilter.Matches. User text is matched literally.
func internshipQuery(filter entities.InternshipFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"company": pattern},
		}
	}
	if filter.Location != "" {
		query["location"] = containsPattern(filter.Location)
	}
	if filter.Type != "" {
		query["type"] = string(filter.Type)
	}
	if filter.MinStipend > 0 {
		query["stipend"] = bson.M{"$gte": filter.MinStipend}
	}
	if len(filter.Skills) > 0 {
		query["skills"] = bson.M{"$in": filter.Skills}
	}
	return query
}

func internshipFindOptions(filter entities.InternshipFilter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return opts
}

func containsPattern(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}
