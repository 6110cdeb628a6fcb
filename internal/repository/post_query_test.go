package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/model"
)

func TestSearchFilter_Empty(t *testing.T) {
	filter := searchFilter(model.SearchOptions{})

	assert.Equal(t, bson.M{"isDisabled": false}, filter)
}

func TestSearchFilter_Keyword(t *testing.T) {
	filter := searchFilter(model.SearchOptions{Keyword: "golang"})

	re := bson.M{"$regex": "golang", "$options": "i"}
	assert.Equal(t, bson.A{
		bson.M{"title": re},
		bson.M{"content": re},
	}, filter["$or"])
}

func TestSearchFilter_CategoryAndAuthor(t *testing.T) {
	authorID := bson.NewObjectID()
	filter := searchFilter(model.SearchOptions{Category: "tech", AuthorID: authorID})

	assert.Equal(t, "tech", filter["category"])
	assert.Equal(t, authorID, filter["author"])
	assert.NotContains(t, filter, "$or")
}

func TestSearchSort_Defaults(t *testing.T) {
	sort := searchSort(model.SearchOptions{})

	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, sort)
}

func TestSearchSort_DescendingByField(t *testing.T) {
	sort := searchSort(model.SearchOptions{SortBy: "title", SortOrder: "desc"})

	assert.Equal(t, bson.D{{Key: "title", Value: -1}}, sort)
}

func TestAdminPipeline_MatchStage(t *testing.T) {
	withoutMatch := adminPipeline(nil)
	withMatch := adminPipeline(bson.M{"_id": bson.NewObjectID()})

	assert.Len(t, withMatch, len(withoutMatch)+1)
	assert.Equal(t, "$match", withMatch[0][0].Key)
	assert.Equal(t, "$lookup", withoutMatch[0][0].Key)
}
