package entities

import (
	"strings"
	"time"
)

type PartOfSpeech string

const (
	PartOfSpeechNone        PartOfSpeech = " "
	PartOfSpeechNoun        PartOfSpeech = "N"
	PartOfSpeechVerb        PartOfSpeech = "V"
	PartOfSpeechAdjective   PartOfSpeech = "ADJ"
	PartOfSpeechAdverb      PartOfSpeech = "ADV"
	PartOfSpeechPreposition PartOfSpeech = "PREP"
	PartOfSpeechMeasureWord PartOfSpeech = "MW"
)

var partOfSpeechNames = map[PartOfSpeech]string{
	PartOfSpeechNone:        "",
	PartOfSpeechNoun:        "noun",
	PartOfSpeechVerb:        "verb",
	PartOfSpeechAdjective:   "adjective",
	PartOfSpeechAdverb:      "adverb",
	PartOfSpeechPreposition: "preposition",
	PartOfSpeechMeasureWord: "measure word",
}

// Valid reports whether p is one of the known codes. The empty string is
// accepted and stored as PartOfSpeechNone.
func (p PartOfSpeech) Valid() bool {
	if p == "" {
		return true
	}
	_, ok := partOfSpeechNames[p]
	return ok
}

// Normalize maps the empty code to PartOfSpeechNone.
func (p PartOfSpeech) Normalize() PartOfSpeech {
	if p == "" {
		return PartOfSpeechNone
	}
	return p
}

// Name returns the human-readable label, e.g. "measure word" for "MW".
func (p PartOfSpeech) Name() string {
	return partOfSpeechNames[p.Normalize()]
}

// ParsePartOfSpeech accepts a code ("MW") or a name ("measure word") in any
// case. Blank input yields PartOfSpeechNone.
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartOfSpeechNone, true
	}
	for code, name := range partOfSpeechNames {
		if code == PartOfSpeechNone {
			continue
		}
		if strings.EqualFold(s, string(code)) || strings.EqualFold(s, name) {
			return code, true
		}
	}
	return "", false
}

const (
	MaxWordLength       = 10
	MaxPinyinLength     = 50
	MaxDefinitionLength = 100
	MaxTagLength        = 20
)

type Word struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
	Word         string       `gorm:"index;size:10;not null" json:"word"`
	Pinyin       string       `gorm:"size:50" json:"pinyin"`
	Notes        string       `gorm:"type:text" json:"notes"`
	Confidence   int          `gorm:"default:0;not null" json:"confidence"`
	DateAdded    time.Time    `gorm:"autoCreateTime" json:"date_added"`
	LastModified time.Time    `gorm:"autoUpdateTime" json:"last_modified"`
	Definitions  []Definition `gorm:"foreignKey:WordID" json:"definitions"`
	Tags         []Tag        `gorm:"many2many:word_tags" json:"tags"`
	RelatedWords []Word       `gorm:"many2many:word_related_words;joinForeignKey:WordID;joinReferences:RelatedWordID" json:"related_words"`
}

type Definition struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	WordID           uint              `gorm:"index;not null" json:"-"`
	Definition       string            `gorm:"size:100;not null" json:"definition"`
	PartOfSpeech     PartOfSpeech      `gorm:"size:4;default:' '" json:"part_of_speech"`
	ExampleSentences []ExampleSentence `gorm:"foreignKey:DefinitionID" json:"example_sentences"`
}

type ExampleSentence struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DefinitionID uint   `gorm:"index;not null" json:"-"`
	Sentence     string `gorm:"type:text;not null" json:"sentence"`
	Pinyin       string `gorm:"type:text" json:"pinyin"`
	Translation  string `gorm:"type:text" json:"translation"`
}

// Tag is shared by all users. Its identity is the lower-cased text.
type Tag struct {
	ID  uint   `gorm:"primaryKey" json:"-"`
	Tag string `gorm:"uniqueIndex;size:20;not null" json:"tag"`
}

// WordTag is the join row between words and tags.
type WordTag struct {
	WordID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey;index"`
}

// WordRelation links two related words. Relations are stored in both
// directions so either side can preload the other.
type WordRelation struct {
	WordID        uint `gorm:"primaryKey"`
	RelatedWordID uint `gorm:"primaryKey;index"`
}

func (WordRelation) TableName() string {
	return "word_related_words"
}

// ComparisonGroup collects contrastive usage examples of similar words.
type ComparisonGroup struct {
	ID       uint                `gorm:"primaryKey" json:"id"`
	UserID   uint                `gorm:"index" json:"user_id"`
	Name     string              `gorm:"size:20" json:"name"`
	Examples []ComparisonExample `gorm:"foreignKey:ComparisonGroupID" json:"examples"`
}

type ComparisonExample struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	ComparisonGroupID uint   `gorm:"index;not null" json:"comparison_group_id"`
	WordID            uint   `gorm:"index;not null" json:"word_id"`
	Example           string `gorm:"type:text" json:"example"`
	Explanation       string `gorm:"type:text" json:"explanation"`
}

// NormalizeTag returns the canonical form of a tag: trimmed and lower-cased.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
