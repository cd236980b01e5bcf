// Package tags provides read access to tags and the orphan sweep.
//
// Tags are created and attached only through word writes in the words
// package; this package never mutates word_tags.
//
// # Interface Implementation
//
//	var _ http.TagStore = (*Repository)(nil)
//	var _ tasks.OrphanTagsCleaner = (*Repository)(nil)
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	tags, err := repo.ListForUser(userID)
package tags

import (
	"gorm.io/gorm"

	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/entities"
)

// Repository handles all tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func usedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"tags.id IN (SELECT word_tags.tag_id FROM word_tags JOIN words ON words.id = word_tags.word_id WHERE words.user_id = ?)",
			userID,
		)
	}
}

// ListForUser returns the tags attached to at least one of the user's words,
// sorted by name.
func (r *Repository) ListForUser(userID uint) ([]entities.Tag, error) {
	tags := []entities.Tag{}
	err := r.db.Scopes(usedBy(userID)).Order("tags.tag").Find(&tags).Error
	return tags, err
}

// FindForUser looks a tag up by name. Tags the user has not attached to any
// word are reported as database.ErrNotFound.
func (r *Repository) FindForUser(userID uint, name string) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.db.Scopes(usedBy(userID)).
		Where("tags.tag = ?", entities.NormalizeTag(name)).
		First(&tag).Error
	if err != nil {
		return nil, database.NotFoundIfMissing(err)
	}
	return &tag, nil
}

// CountOrphanTags returns how many tags have no words.
func (r *Repository) CountOrphanTags() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Tag{}).
		Where("id NOT IN (SELECT tag_id FROM word_tags)").
		Count(&count).Error
	return count, err
}

// DeleteOrphanTags removes all tags without words.
func (r *Repository) DeleteOrphanTags() (int64, error) {
	result := r.db.Exec(`DELETE FROM tags WHERE id NOT IN (SELECT tag_id FROM word_tags)`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
