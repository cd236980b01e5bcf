package words

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/entities"
)

// WordInput is the write payload for a word. Nil fields are left untouched
// on update; a non-nil collection replaces the persisted one.
type WordInput struct {
	ID           *uint               `json:"id,omitempty"`
	Word         *string             `json:"word" validate:"omitempty,max=10"`
	Pinyin       *string             `json:"pinyin" validate:"omitempty,max=50"`
	Notes        *string             `json:"notes"`
	Confidence   *int                `json:"confidence"`
	Definitions  *[]DefinitionInput  `json:"definitions" validate:"omitempty,dive"`
	Tags         *[]TagInput         `json:"tags"`
	RelatedWords *[]RelatedWordInput `json:"related_words" validate:"omitempty,dive"`
}

type DefinitionInput struct {
	ID               *uint                   `json:"id,omitempty"`
	Definition       string                  `json:"definition" validate:"required,max=100"`
	PartOfSpeech     entities.PartOfSpeech   `json:"part_of_speech" validate:"omitempty,partofspeech"`
	ExampleSentences *[]ExampleSentenceInput `json:"example_sentences" validate:"omitempty,dive"`
}

type ExampleSentenceInput struct {
	ID          *uint  `json:"id,omitempty"`
	Sentence    string `json:"sentence" validate:"required"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
}

type TagInput struct {
	Tag string `json:"tag"`
}

// RelatedWordInput references a word by id, or by text when id is absent.
type RelatedWordInput struct {
	ID   *uint   `json:"id,omitempty"`
	Word *string `json:"word" validate:"omitempty,max=10"`
}

var tagPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		return ValidTag(fl.Field().String())
	})
	_ = v.RegisterValidation("partofspeech", func(fl validator.FieldLevel) bool {
		return entities.PartOfSpeech(fl.Field().String()).Valid()
	})
	return v
}

// ValidTag reports whether an already normalized tag is acceptable.
func ValidTag(tag string) bool {
	return utf8.RuneCountInString(tag) <= entities.MaxTagLength && tagPattern.MatchString(tag)
}

// NormalizeTags lower-cases and trims tags, drops blanks and duplicates and
// validates the rest. Order of first occurrence is kept.
func NormalizeTags(inputs []TagInput) ([]string, error) {
	seen := make(map[string]bool, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		name := entities.NormalizeTag(in.Tag)
		if name == "" || seen[name] {
			continue
		}
		if err := validate.Var(name, "tagname"); err != nil {
			return nil, database.NewValidationError("tags",
				fmt.Sprintf("%q is not a valid tag: use letters and digits only, at most %d characters", in.Tag, entities.MaxTagLength))
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// validateInput checks field constraints that do not need the database.
func validateInput(in WordInput) error {
	if err := validate.Struct(in); err != nil {
		return validationErrorFrom(err)
	}
	if in.RelatedWords != nil {
		for _, rel := range *in.RelatedWords {
			if rel.ID == nil && (rel.Word == nil || strings.TrimSpace(*rel.Word) == "") {
				return database.NewValidationError("related_words", "must specify 'word' or 'id' for related_words")
			}
		}
	}
	return nil
}

func validationErrorFrom(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return database.NewValidationError(fieldPath(fe), messageFor(fe))
}

// fieldPath drops the struct name from the namespace:
// "WordInput.definitions[0].definition" becomes "definitions[0].definition".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "partofspeech":
		return fmt.Sprintf("%q is not a valid choice", fe.Value())
	default:
		return "invalid value"
	}
}
