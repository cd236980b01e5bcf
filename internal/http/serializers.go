package http

import (
	"time"

	"github.com/mrlokans/jianjin/internal/entities"
	"github.com/mrlokans/jianjin/internal/pinyin"
)

// WordResponse is the JSON form of a word with its nested collections.
type WordResponse struct {
	ID           uint                  `json:"id"`
	Word         string                `json:"word"`
	Pinyin       string                `json:"pinyin"`
	PinyinMarks  string                `json:"pinyin_marks"`
	Notes        string                `json:"notes"`
	User         string                `json:"user"`
	Confidence   int                   `json:"confidence"`
	DateAdded    time.Time             `json:"date_added"`
	LastModified time.Time             `json:"last_modified"`
	Definitions  []DefinitionResponse  `json:"definitions"`
	Tags         []TagResponse         `json:"tags"`
	RelatedWords []RelatedWordResponse `json:"related_words"`
}

type DefinitionResponse struct {
	ID               uint                      `json:"id"`
	Definition       string                    `json:"definition"`
	PartOfSpeech     entities.PartOfSpeech     `json:"part_of_speech"`
	ExampleSentences []ExampleSentenceResponse `json:"example_sentences"`
}

type ExampleSentenceResponse struct {
	ID          uint   `json:"id"`
	Sentence    string `json:"sentence"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
}

type TagResponse struct {
	Tag string `json:"tag"`
}

type RelatedWordResponse struct {
	ID     uint   `json:"id"`
	Word   string `json:"word"`
	Pinyin string `json:"pinyin"`
}

func newWordResponse(w *entities.Word) WordResponse {
	resp := WordResponse{
		ID:           w.ID,
		Word:         w.Word,
		Pinyin:       w.Pinyin,
		PinyinMarks:  pinyin.ToneMarks(w.Pinyin),
		Notes:        w.Notes,
		User:         w.User.Username,
		Confidence:   w.Confidence,
		DateAdded:    w.DateAdded.UTC(),
		LastModified: w.LastModified.UTC(),
		Definitions:  make([]DefinitionResponse, 0, len(w.Definitions)),
		Tags:         newTagResponses(w.Tags),
		RelatedWords: make([]RelatedWordResponse, 0, len(w.RelatedWords)),
	}
	for _, d := range w.Definitions {
		def := DefinitionResponse{
			ID:               d.ID,
			Definition:       d.Definition,
			PartOfSpeech:     d.PartOfSpeech,
			ExampleSentences: make([]ExampleSentenceResponse, 0, len(d.ExampleSentences)),
		}
		for _, s := range d.ExampleSentences {
			def.ExampleSentences = append(def.ExampleSentences, ExampleSentenceResponse{
				ID:          s.ID,
				Sentence:    s.Sentence,
				Pinyin:      s.Pinyin,
				Translation: s.Translation,
			})
		}
		resp.Definitions = append(resp.Definitions, def)
	}
	for _, r := range w.RelatedWords {
		resp.RelatedWords = append(resp.RelatedWords, RelatedWordResponse{ID: r.ID, Word: r.Word, Pinyin: r.Pinyin})
	}
	return resp
}

func newWordResponses(words []entities.Word) []WordResponse {
	out := make([]WordResponse, 0, len(words))
	for i := range words {
		out = append(out, newWordResponse(&words[i]))
	}
	return out
}

func newTagResponses(tags []entities.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{Tag: t.Tag})
	}
	return out
}
