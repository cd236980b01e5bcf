// Package words provides database operations for vocabulary words and their
// nested definitions, example sentences, tags and related words.
//
// This package implements the WordStore interface defined in internal/http/stores.go.
//
// # Interface Implementation
//
//	var _ http.WordStore = (*Repository)(nil)
//
// # Usage
//
//	repo := words.NewRepository(db)
//	word, err := repo.Create(userID, words.WordInput{Word: &text})
//	page, total, err := repo.List(userID, words.ListOptions{Order: "-confidence", Limit: 10})
//
// Every write runs in a single transaction: a failure in any nested
// collection rolls back the whole request.
package words

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/entities"
)

// Repository handles all word database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListOptions filters and pages a word listing.
type ListOptions struct {
	Tag    string // only words carrying this tag
	Order  string // one of OrderFields, optionally prefixed with "-"
	Limit  int
	Offset int
}

// OrderFields lists the sort keys accepted by List.
var OrderFields = []string{"date_added", "last_modified", "word", "pinyin", "confidence"}

// DefaultOrder is used when ListOptions.Order is empty.
const DefaultOrder = "-date_added"

// ParseOrder converts an order key into an ORDER BY clause.
func ParseOrder(order string) (string, error) {
	if order == "" {
		order = DefaultOrder
	}
	direction := "ASC"
	field := order
	if strings.HasPrefix(order, "-") {
		direction = "DESC"
		field = order[1:]
	}
	for _, allowed := range OrderFields {
		if field == allowed {
			return "words." + field + " " + direction + ", words.id " + direction, nil
		}
	}
	return "", database.NewValidationError("order",
		"unsupported ordering "+order+"; use one of "+strings.Join(OrderFields, ", "))
}

// ConfidenceEntry is the minimal projection used for flashcard draws.
type ConfidenceEntry struct {
	ID         uint
	Confidence int
}

func preloadWord(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Definitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("definitions.id")
		}).
		Preload("Definitions.ExampleSentences", func(db *gorm.DB) *gorm.DB {
			return db.Order("example_sentences.id")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.tag")
		}).
		Preload("RelatedWords", func(db *gorm.DB) *gorm.DB {
			return db.Order("words.id")
		})
}

func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("words.user_id = ?", userID)
	}
}

func taggedWith(tag string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"words.id IN (SELECT word_tags.word_id FROM word_tags JOIN tags ON tags.id = word_tags.tag_id WHERE tags.tag = ?)",
			entities.NormalizeTag(tag),
		)
	}
}

// Get retrieves one of the user's words with all nested collections.
func (r *Repository) Get(userID, id uint) (*entities.Word, error) {
	var word entities.Word
	err := preloadWord(r.db).Scopes(ownedBy(userID)).First(&word, id).Error
	if err != nil {
		return nil, database.NotFoundIfMissing(err)
	}
	return &word, nil
}

// List returns a page of the user's words and the total count.
func (r *Repository) List(userID uint, opts ListOptions) ([]entities.Word, int64, error) {
	orderBy, err := ParseOrder(opts.Order)
	if err != nil {
		return nil, 0, err
	}

	scopes := []func(*gorm.DB) *gorm.DB{ownedBy(userID)}
	if opts.Tag != "" {
		scopes = append(scopes, taggedWith(opts.Tag))
	}

	var total int64
	if err := r.db.Model(&entities.Word{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := preloadWord(r.db).Scopes(scopes...).Order(orderBy)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	words := []entities.Word{}
	if err := query.Find(&words).Error; err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// SearchExact returns the user's words whose text equals text.
func (r *Repository) SearchExact(userID uint, text string) ([]entities.Word, error) {
	words := []entities.Word{}
	err := preloadWord(r.db).Scopes(ownedBy(userID)).
		Where("words.word = ?", text).
		Order("words.id").
		Find(&words).Error
	return words, err
}

// likeEscaper makes user text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns the user's words whose text, pinyin or any definition
// contains text (case-insensitive).
func (r *Repository) Search(userID uint, text string) ([]entities.Word, error) {
	pattern := "%" + likeEscaper.Replace(text) + "%"
	words := []entities.Word{}
	err := preloadWord(r.db).Scopes(ownedBy(userID)).
		Where(
			`words.word LIKE ? ESCAPE '\' OR LOWER(words.pinyin) LIKE LOWER(?) ESCAPE '\' OR words.id IN (SELECT definitions.word_id FROM definitions WHERE LOWER(definitions.definition) LIKE LOWER(?) ESCAPE '\')`,
			pattern, pattern, pattern,
		).
		Order("words.word, words.id").
		Find(&words).Error
	return words, err
}

// ConfidenceEntries returns id and confidence of the user's words, optionally
// restricted to a tag.
func (r *Repository) ConfidenceEntries(userID uint, tag string) ([]ConfidenceEntry, error) {
	query := r.db.Model(&entities.Word{}).Scopes(ownedBy(userID))
	if tag != "" {
		query = query.Scopes(taggedWith(tag))
	}
	entries := []ConfidenceEntry{}
	err := query.Select("words.id", "words.confidence").Order("words.id").Scan(&entries).Error
	return entries, err
}

// SetConfidence stores a new confidence score on one of the user's words.
func (r *Repository) SetConfidence(userID, id uint, confidence int) error {
	result := r.db.Model(&entities.Word{}).
		Scopes(ownedBy(userID)).
		Where("words.id = ?", id).
		Update("confidence", confidence)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// CountForUser returns how many words the user owns.
func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Word{}).Scopes(ownedBy(userID)).Count(&count).Error
	return count, err
}
