package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Login(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, LoginTemplate, map[string]any{
		"Title":     "Log in",
		"CSRFToken": "tok123",
		"Next":      "/words/words/",
		"Error":     "Invalid username or password",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `name="gorilla.csrf.Token" value="tok123"`)
	assert.Contains(t, html, `value="/words/words/"`)
	assert.Contains(t, html, "Invalid username or password")
}

func TestTemplates_Main(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, MainTemplate, map[string]any{
		"Title":     "Words",
		"CSRFToken": "tok123",
		"Username":  "alice",
		"WordCount": int64(3),
		"Tags":      []struct{ Tag string }{{Tag: "hsk1"}},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<meta name="csrf-token" content="tok123">`)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, `data-tag="hsk1"`)
	assert.Contains(t, html, "3 words")
}
