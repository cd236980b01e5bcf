package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/database/tags"
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testUserHeader = "X-Test-User"

type testEnv struct {
	t      *testing.T
	db     *database.Database
	words  *words.Repository
	router *gin.Engine
	users  map[string]uint
}

// setupTestEnv builds the full router over a file-backed SQLite database.
// Requests authenticate as the user named in the X-Test-User header.
func setupTestEnv(t *testing.T, users ...string) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{t: t, db: db, words: words.NewRepository(db.DB), users: map[string]uint{}}
	for _, name := range users {
		user := entities.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
		require.NoError(t, db.DB.Create(&user).Error)
		env.users[name] = user.ID
	}

	env.router = NewRouter(RouterConfig{
		WordStore: env.words,
		TagStore:  tags.NewRepository(db.DB),
		Database:  db,
		Random:    func() float64 { return 0 },
		Authenticate: func(c *gin.Context) {
			name := c.GetHeader(testUserHeader)
			if id, ok := env.users[name]; ok {
				c.Set(auth.ContextKeyUserID, id)
				c.Set(auth.ContextKeyUsername, name)
			}
			c.Next()
		},
		Pagination: PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
		Version:    "test",
	})
	return env
}

func (env *testEnv) do(user, method, path string, body any) *httptest.ResponseRecorder {
	env.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(env.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) createWord(user string, in words.WordInput) *entities.Word {
	env.t.Helper()
	word, err := env.words.Create(env.users[user], in)
	require.NoError(env.t, err)
	return word
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func strPtr(s string) *string { return &s }

func tagList(names ...string) *[]words.TagInput {
	out := make([]words.TagInput, len(names))
	for i, n := range names {
		out[i] = words.TagInput{Tag: n}
	}
	return &out
}
