package http

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/flashcard"
)

type FlashcardController struct {
	store ConfidenceStore
	rnd   func() float64
}

// NewFlashcardController creates the controller. A nil rnd uses math/rand.
func NewFlashcardController(store ConfidenceStore, rnd func() float64) *FlashcardController {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &FlashcardController{store: store, rnd: rnd}
}

// Draw returns one of the user's words, low-confidence words being more likely
// GET /words/flashcard/
// GET /words/flashcard/:tag
func (fc *FlashcardController) Draw(c *gin.Context) {
	userID := GetUserID(c)

	entries, err := fc.store.ConfidenceEntries(userID, c.Param("tag"))
	if err != nil {
		respondInternalError(c, err, "flashcard candidates")
		return
	}
	if len(entries) == 0 {
		respondNotFound(c, "word")
		return
	}

	entry, err := flashcard.Draw(entries, func(e words.ConfidenceEntry) int { return e.Confidence }, fc.rnd)
	if errors.Is(err, flashcard.ErrNoSelection) {
		respondNotFound(c, "word")
		return
	}
	if err != nil {
		respondInternalError(c, err, "flashcard draw")
		return
	}

	word, err := fc.store.Get(userID, entry.ID)
	if err != nil {
		respondStoreError(c, err, "word", "flashcard word")
		return
	}
	c.JSON(http.StatusOK, newWordResponse(word))
}
