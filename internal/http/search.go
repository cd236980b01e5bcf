package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	store WordSearcher
}

func NewSearchController(store WordSearcher) *SearchController {
	return &SearchController{store: store}
}

// Exact returns the user's words whose text equals the path parameter
// GET /words/searchexact/:text
func (sc *SearchController) Exact(c *gin.Context) {
	results, err := sc.store.SearchExact(GetUserID(c), c.Param("text"))
	if err != nil {
		respondInternalError(c, err, "search exact")
		return
	}
	c.JSON(http.StatusOK, newWordResponses(results))
}

// Substring returns the user's words containing the path parameter in their
// text, pinyin or definitions
// GET /words/search/:text
func (sc *SearchController) Substring(c *gin.Context) {
	results, err := sc.store.Search(GetUserID(c), c.Param("text"))
	if err != nil {
		respondInternalError(c, err, "search")
		return
	}
	c.JSON(http.StatusOK, newWordResponses(results))
}
