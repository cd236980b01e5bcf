package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/database/words"
)

type WordsController struct {
	store      WordStore
	tags       TagStore
	pagination PaginationConfig
}

func NewWordsController(store WordStore, tags TagStore, pagination PaginationConfig) *WordsController {
	return &WordsController{store: store, tags: tags, pagination: pagination}
}

// List returns a page of the user's words
// GET /words/words/
func (wc *WordsController) List(c *gin.Context) {
	wc.listPage(c, "")
}

// ListByTag returns a page of the user's words carrying a tag
// GET /words/wordsbytag/:tag
func (wc *WordsController) ListByTag(c *gin.Context) {
	tag := c.Param("tag")
	if _, err := wc.tags.FindForUser(GetUserID(c), tag); err != nil {
		respondStoreError(c, err, "tag", "find tag")
		return
	}
	wc.listPage(c, tag)
}

func (wc *WordsController) listPage(c *gin.Context, tag string) {
	page, ok := parsePagination(c, wc.pagination)
	if !ok {
		return
	}

	results, total, err := wc.store.List(GetUserID(c), words.ListOptions{
		Tag:    tag,
		Order:  c.Query("order"),
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		respondStoreError(c, err, "word", "list words")
		return
	}
	if page.Page > page.lastPage(total) {
		respondInvalidPage(c)
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(c, page, total, newWordResponses(results)))
}

// Get returns one of the user's words
// GET /words/words/:id/
func (wc *WordsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "word")
	if !ok {
		return
	}

	word, err := wc.store.Get(GetUserID(c), id)
	if err != nil {
		respondStoreError(c, err, "word", "get word")
		return
	}
	c.JSON(http.StatusOK, newWordResponse(word))
}

// Create stores a new word with its nested collections
// POST /words/words/
func (wc *WordsController) Create(c *gin.Context) {
	var in words.WordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	word, err := wc.store.Create(GetUserID(c), in)
	if err != nil {
		respondStoreError(c, err, "word", "create word")
		return
	}
	respondCreated(c, newWordResponse(word))
}

// Update reconciles a word and its nested collections with the payload
// PUT /words/words/:id/
func (wc *WordsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "word")
	if !ok {
		return
	}

	var in words.WordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	word, err := wc.store.Update(GetUserID(c), id, in)
	if err != nil {
		respondStoreError(c, err, "word", "update word")
		return
	}
	c.JSON(http.StatusOK, newWordResponse(word))
}

// Delete removes a word
// DELETE /words/words/:id/
func (wc *WordsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "word")
	if !ok {
		return
	}

	if err := wc.store.Delete(GetUserID(c), id); err != nil {
		respondStoreError(c, err, "word", "delete word")
		return
	}
	c.Status(http.StatusNoContent)
}
