package importers

import (
	"fmt"
	"strings"

	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/entities"
)

// RawWord is one imported row before it becomes a words.WordInput.
type RawWord struct {
	Row          int // 1-based position in the source, for error messages
	Word         string
	Pinyin       string
	Definitions  []string
	PartOfSpeech string
	Tags         []string
	Notes        string
}

// Source provides metadata about where the rows came from.
type Source struct {
	Name     string
	FilePath string
}

// Converter turns source data into RawWords.
//
// Implementations:
//   - XLSXConverter (xlsx.go) - spreadsheet rows
type Converter interface {
	Convert() ([]RawWord, Source)
}

// WordCreator persists words for a user.
type WordCreator interface {
	SearchExact(userID uint, text string) ([]entities.Word, error)
	Create(userID uint, in words.WordInput) (*entities.Word, error)
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Source    Source
	Processed int
	Created   int
	Skipped   int      // rows whose word already existed
	Errors    []string // rows that failed validation, one message each
}

// Pipeline handles the common import workflow:
// convert → skip existing → validate → save.
type Pipeline struct {
	store WordCreator
}

// NewPipeline creates a new import pipeline with the given store.
func NewPipeline(store WordCreator) *Pipeline {
	return &Pipeline{store: store}
}

// Import creates a word for every new row. Invalid rows are reported in
// ImportResult.Errors and do not stop the run; storage failures do.
func (p *Pipeline) Import(userID uint, converter Converter) (ImportResult, error) {
	rows, source := converter.Convert()
	result := ImportResult{Source: source, Errors: []string{}}

	for _, row := range rows {
		result.Processed++

		input, err := row.toInput()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row.Row, err))
			continue
		}

		existing, err := p.store.SearchExact(userID, *input.Word)
		if err != nil {
			return result, fmt.Errorf("row %d: lookup %q: %w", row.Row, *input.Word, err)
		}
		if len(existing) > 0 {
			result.Skipped++
			continue
		}

		if _, err := p.store.Create(userID, input); err != nil {
			if database.IsValidationError(err) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row.Row, err))
				continue
			}
			return result, fmt.Errorf("row %d: create %q: %w", row.Row, *input.Word, err)
		}
		result.Created++
	}

	return result, nil
}

func (r RawWord) toInput() (words.WordInput, error) {
	word := strings.TrimSpace(r.Word)
	if word == "" {
		return words.WordInput{}, fmt.Errorf("word is empty")
	}

	pos, ok := entities.ParsePartOfSpeech(r.PartOfSpeech)
	if !ok {
		return words.WordInput{}, fmt.Errorf("unknown part of speech %q", r.PartOfSpeech)
	}

	pinyin := strings.TrimSpace(r.Pinyin)
	notes := strings.TrimSpace(r.Notes)
	in := words.WordInput{
		Word:   &word,
		Pinyin: &pinyin,
		Notes:  &notes,
	}

	definitions := make([]words.DefinitionInput, 0, len(r.Definitions))
	for _, d := range r.Definitions {
		if d = strings.TrimSpace(d); d != "" {
			definitions = append(definitions, words.DefinitionInput{Definition: d, PartOfSpeech: pos})
		}
	}
	in.Definitions = &definitions

	tags := make([]words.TagInput, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, words.TagInput{Tag: t})
	}
	in.Tags = &tags

	return in, nil
}
