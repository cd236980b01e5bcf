package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagsController struct {
	store TagStore
}

func NewTagsController(store TagStore) *TagsController {
	return &TagsController{store: store}
}

// List returns the tags attached to the user's words
// GET /words/tags/
func (tc *TagsController) List(c *gin.Context) {
	tags, err := tc.store.ListForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list tags")
		return
	}
	c.JSON(http.StatusOK, newTagResponses(tags))
}
