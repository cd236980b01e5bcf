package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/ui"
)

type UIController struct {
	words WordReader
	tags  TagStore
}

func NewUIController(words WordReader, tags TagStore) *UIController {
	return &UIController{words: words, tags: tags}
}

// MainPage renders the vocabulary page for the signed-in user.
func (controller *UIController) MainPage(c *gin.Context) {
	userID := GetUserID(c)

	count, err := controller.words.CountForUser(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading words: %s", err.Error())
		return
	}
	tags, err := controller.tags.ListForUser(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading tags: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, ui.MainTemplate, gin.H{
		"Title":     "Jianjin",
		"Username":  auth.GetUsername(c),
		"CSRFToken": auth.GetCSRFToken(c),
		"WordCount": count,
		"Tags":      tags,
	})
}
