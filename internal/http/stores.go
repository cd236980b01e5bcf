package http

import (
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/entities"
)

// Each controller depends on the narrowest interface it needs. Every method
// is scoped to the user that owns the data.

// WordReader provides read access to a user's words.
type WordReader interface {
	Get(userID, id uint) (*entities.Word, error)
	List(userID uint, opts words.ListOptions) ([]entities.Word, int64, error)
	CountForUser(userID uint) (int64, error)
}

// WordStore is the full word repository used by the words API.
type WordStore interface {
	WordReader
	Create(userID uint, in words.WordInput) (*entities.Word, error)
	Update(userID, id uint, in words.WordInput) (*entities.Word, error)
	Delete(userID, id uint) error
}

// WordSearcher finds words by text.
type WordSearcher interface {
	SearchExact(userID uint, text string) ([]entities.Word, error)
	Search(userID uint, text string) ([]entities.Word, error)
}

// ConfidenceStore reads and writes confidence scores.
type ConfidenceStore interface {
	Get(userID, id uint) (*entities.Word, error)
	ConfidenceEntries(userID uint, tag string) ([]words.ConfidenceEntry, error)
	SetConfidence(userID, id uint, confidence int) error
}

// TagStore lists the tags a user has attached to words.
type TagStore interface {
	ListForUser(userID uint) ([]entities.Tag, error)
	FindForUser(userID uint, name string) (*entities.Tag, error)
}
