package words

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/entities"
)

// Create stores a new word owned by userID. A payload carrying an id updates
// that word instead.
func (r *Repository) Create(userID uint, in WordInput) (*entities.Word, error) {
	if in.ID != nil {
		return r.Update(userID, *in.ID, in)
	}
	if in.Word == nil || strings.TrimSpace(*in.Word) == "" {
		return nil, database.NewValidationError("word", "this field is required")
	}
	tags, err := prepare(in)
	if err != nil {
		return nil, err
	}

	var id uint
	err = r.db.Transaction(func(tx *gorm.DB) error {
		word := entities.Word{UserID: userID}
		applyScalars(&word, in)
		if err := tx.Omit(clause.Associations).Create(&word).Error; err != nil {
			return fmt.Errorf("create word: %w", err)
		}
		id = word.ID
		return reconcileChildren(tx, userID, word.ID, in, tags)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(userID, id)
}

// Update merges the payload into one of the user's words and reconciles
// every nested collection present in the payload.
func (r *Repository) Update(userID, id uint, in WordInput) (*entities.Word, error) {
	tags, err := prepare(in)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		word, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}
		applyScalars(word, in)
		if strings.TrimSpace(word.Word) == "" {
			return database.NewValidationError("word", "this field may not be blank")
		}
		if err := tx.Omit(clause.Associations).Save(word).Error; err != nil {
			return fmt.Errorf("update word: %w", err)
		}
		return reconcileChildren(tx, userID, word.ID, in, tags)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(userID, id)
}

// Delete removes one of the user's words with its definitions, sentences and
// links, then drops tags that no longer label any word.
func (r *Repository) Delete(userID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		word, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}

		var tagIDs []uint
		if err := tx.Model(&entities.WordTag{}).Where("word_id = ?", id).Pluck("tag_id", &tagIDs).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM example_sentences WHERE definition_id IN (SELECT id FROM definitions WHERE word_id = ?)", id).Error; err != nil {
			return fmt.Errorf("delete example sentences: %w", err)
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.Definition{}).Error; err != nil {
			return fmt.Errorf("delete definitions: %w", err)
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.WordTag{}).Error; err != nil {
			return fmt.Errorf("delete word tags: %w", err)
		}
		if err := tx.Where("word_id = ? OR related_word_id = ?", id, id).Delete(&entities.WordRelation{}).Error; err != nil {
			return fmt.Errorf("delete related words: %w", err)
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.ComparisonExample{}).Error; err != nil {
			return fmt.Errorf("delete comparison examples: %w", err)
		}
		if err := tx.Delete(word).Error; err != nil {
			return fmt.Errorf("delete word: %w", err)
		}

		_, err = deleteOrphanTags(tx, tagIDs)
		return err
	})
}

// prepare validates the payload and normalizes its tags. The returned slice
// is nil when the payload carries no tag list.
func prepare(in WordInput) ([]string, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Tags == nil {
		return nil, nil
	}
	return NormalizeTags(*in.Tags)
}

func findOwned(tx *gorm.DB, userID, id uint) (*entities.Word, error) {
	var word entities.Word
	if err := tx.Where("user_id = ?", userID).First(&word, id).Error; err != nil {
		return nil, database.NotFoundIfMissing(err)
	}
	return &word, nil
}

func applyScalars(word *entities.Word, in WordInput) {
	if in.Word != nil {
		word.Word = *in.Word
	}
	if in.Pinyin != nil {
		word.Pinyin = *in.Pinyin
	}
	if in.Notes != nil {
		word.Notes = *in.Notes
	}
	if in.Confidence != nil {
		word.Confidence = *in.Confidence
	}
}

func reconcileChildren(tx *gorm.DB, userID, wordID uint, in WordInput, tags []string) error {
	if in.Definitions != nil {
		if err := reconcileDefinitions(tx, wordID, *in.Definitions); err != nil {
			return err
		}
	}
	if in.Tags != nil {
		if err := reconcileTags(tx, wordID, tags); err != nil {
			return err
		}
	}
	if in.RelatedWords != nil {
		if err := reconcileRelatedWords(tx, userID, wordID, *in.RelatedWords); err != nil {
			return err
		}
	}
	return nil
}

// reconcileDefinitions makes the word's definitions match inputs. Entries
// with an id must name a definition of this word.
func reconcileDefinitions(tx *gorm.DB, wordID uint, inputs []DefinitionInput) error {
	var existing []entities.Definition
	if err := tx.Where("word_id = ?", wordID).Find(&existing).Error; err != nil {
		return err
	}
	byID := make(map[uint]*entities.Definition, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	keep := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		var def *entities.Definition
		if in.ID != nil {
			found, ok := byID[*in.ID]
			if !ok {
				return database.ErrNotFound
			}
			def = found
			def.Definition = in.Definition
			def.PartOfSpeech = in.PartOfSpeech.Normalize()
			if err := tx.Omit(clause.Associations).Save(def).Error; err != nil {
				return fmt.Errorf("update definition: %w", err)
			}
		} else {
			def = &entities.Definition{
				WordID:       wordID,
				Definition:   in.Definition,
				PartOfSpeech: in.PartOfSpeech.Normalize(),
			}
			if err := tx.Omit(clause.Associations).Create(def).Error; err != nil {
				return fmt.Errorf("create definition: %w", err)
			}
		}
		keep[def.ID] = true

		if in.ExampleSentences != nil {
			if err := reconcileSentences(tx, def.ID, *in.ExampleSentences); err != nil {
				return err
			}
		}
	}

	var removed []uint
	for _, def := range existing {
		if !keep[def.ID] {
			removed = append(removed, def.ID)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := tx.Where("definition_id IN ?", removed).Delete(&entities.ExampleSentence{}).Error; err != nil {
		return fmt.Errorf("delete example sentences: %w", err)
	}
	if err := tx.Delete(&entities.Definition{}, removed).Error; err != nil {
		return fmt.Errorf("delete definitions: %w", err)
	}
	return nil
}

// reconcileSentences applies the same contract one level down.
func reconcileSentences(tx *gorm.DB, definitionID uint, inputs []ExampleSentenceInput) error {
	var existing []entities.ExampleSentence
	if err := tx.Where("definition_id = ?", definitionID).Find(&existing).Error; err != nil {
		return err
	}
	byID := make(map[uint]*entities.ExampleSentence, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	keep := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != nil {
			sentence, ok := byID[*in.ID]
			if !ok {
				return database.ErrNotFound
			}
			sentence.Sentence = in.Sentence
			sentence.Pinyin = in.Pinyin
			sentence.Translation = in.Translation
			if err := tx.Save(sentence).Error; err != nil {
				return fmt.Errorf("update example sentence: %w", err)
			}
			keep[sentence.ID] = true
			continue
		}
		sentence := entities.ExampleSentence{
			DefinitionID: definitionID,
			Sentence:     in.Sentence,
			Pinyin:       in.Pinyin,
			Translation:  in.Translation,
		}
		if err := tx.Create(&sentence).Error; err != nil {
			return fmt.Errorf("create example sentence: %w", err)
		}
		keep[sentence.ID] = true
	}

	var removed []uint
	for _, sentence := range existing {
		if !keep[sentence.ID] {
			removed = append(removed, sentence.ID)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := tx.Delete(&entities.ExampleSentence{}, removed).Error; err != nil {
		return fmt.Errorf("delete example sentences: %w", err)
	}
	return nil
}

// reconcileTags replaces the word's tag set and deletes previously attached
// tags that lost their last word.
func reconcileTags(tx *gorm.DB, wordID uint, names []string) error {
	var previous []uint
	if err := tx.Model(&entities.WordTag{}).Where("word_id = ?", wordID).Pluck("tag_id", &previous).Error; err != nil {
		return err
	}

	rows := make([]entities.WordTag, 0, len(names))
	for _, name := range names {
		tag, err := getOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		rows = append(rows, entities.WordTag{WordID: wordID, TagID: tag.ID})
	}

	if err := tx.Where("word_id = ?", wordID).Delete(&entities.WordTag{}).Error; err != nil {
		return fmt.Errorf("clear word tags: %w", err)
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("attach tags: %w", err)
		}
	}

	_, err := deleteOrphanTags(tx, previous)
	return err
}

func getOrCreateTag(tx *gorm.DB, name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := tx.Where(entities.Tag{Tag: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, fmt.Errorf("get or create tag %q: %w", name, err)
	}
	return &tag, nil
}

// deleteOrphanTags removes the given tags if no word references them.
func deleteOrphanTags(tx *gorm.DB, tagIDs []uint) (int64, error) {
	if len(tagIDs) == 0 {
		return 0, nil
	}
	result := tx.Exec("DELETE FROM tags WHERE id IN ? AND id NOT IN (SELECT tag_id FROM word_tags)", tagIDs)
	if result.Error != nil {
		return 0, fmt.Errorf("delete orphan tags: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// reconcileRelatedWords replaces the word's symmetric related-word links.
func reconcileRelatedWords(tx *gorm.DB, userID, wordID uint, inputs []RelatedWordInput) error {
	seen := make(map[uint]bool, len(inputs))
	related := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveRelatedWord(tx, userID, in)
		if err != nil {
			return err
		}
		if id == wordID || seen[id] {
			continue
		}
		seen[id] = true
		related = append(related, id)
	}

	if err := tx.Where("word_id = ? OR related_word_id = ?", wordID, wordID).Delete(&entities.WordRelation{}).Error; err != nil {
		return fmt.Errorf("clear related words: %w", err)
	}
	if len(related) == 0 {
		return nil
	}

	rows := make([]entities.WordRelation, 0, 2*len(related))
	for _, id := range related {
		rows = append(rows,
			entities.WordRelation{WordID: wordID, RelatedWordID: id},
			entities.WordRelation{WordID: id, RelatedWordID: wordID},
		)
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("link related words: %w", err)
	}
	return nil
}

// resolveRelatedWord finds the user's word by id, or by text. A text with no
// match becomes a new placeholder word.
func resolveRelatedWord(tx *gorm.DB, userID uint, in RelatedWordInput) (uint, error) {
	if in.ID != nil {
		word, err := findOwned(tx, userID, *in.ID)
		if err != nil {
			return 0, err
		}
		return word.ID, nil
	}

	text := *in.Word
	var word entities.Word
	err := tx.Where("user_id = ? AND word = ?", userID, text).Order("id").First(&word).Error
	if err == nil {
		return word.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	word = entities.Word{UserID: userID, Word: text}
	if err := tx.Omit(clause.Associations).Create(&word).Error; err != nil {
		return 0, fmt.Errorf("create related word %q: %w", text, err)
	}
	return word.ID, nil
}
