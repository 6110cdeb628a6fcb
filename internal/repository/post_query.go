package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/model"
)

// searchFilter builds the /post/search match document. The keyword is
// applied as a case-insensitive regex over title and content.
func searchFilter(opt model.SearchOptions) bson.M {
	filter := bson.M{"isDisabled": false}

	if opt.Keyword != "" {
		re := bson.M{"$regex": opt.Keyword, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
		}
	}
	if opt.Category != "" {
		filter["category"] = opt.Category
	}
	if !opt.AuthorID.IsZero() {
		filter["author"] = opt.AuthorID
	}
	return filter
}

// searchSort defaults to createdAt ascending; only sortOrder=desc flips it.
func searchSort(opt model.SearchOptions) bson.D {
	field := opt.SortBy
	if field == "" {
		field = "createdAt"
	}
	order := 1
	if opt.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// adminPipeline joins the author document onto each post and projects it to
// {_id, username}. A nil match means every post, disabled ones included.
func adminPipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorDoc",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$authorDoc",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"author": bson.M{
				"_id":      "$authorDoc._id",
				"username": "$authorDoc.username",
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"authorDoc": 0}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	)
	return pipeline
}
