package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartOfSpeech(t *testing.T) {
	tests := []struct {
		code  PartOfSpeech
		valid bool
		name  string
	}{
		{PartOfSpeechNone, true, ""},
		{"", true, ""},
		{PartOfSpeechNoun, true, "noun"},
		{PartOfSpeechMeasureWord, true, "measure word"},
		{"n", false, ""},
		{"PRON", false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.code.Valid())
			assert.Equal(t, tt.name, tt.code.Name())
		})
	}
}

func TestPartOfSpeech_Normalize(t *testing.T) {
	assert.Equal(t, PartOfSpeechNone, PartOfSpeech("").Normalize())
	assert.Equal(t, PartOfSpeechVerb, PartOfSpeechVerb.Normalize())
}

func TestParsePartOfSpeech(t *testing.T) {
	tests := []struct {
		in   string
		want PartOfSpeech
		ok   bool
	}{
		{"", PartOfSpeechNone, true},
		{"  ", PartOfSpeechNone, true},
		{"N", PartOfSpeechNoun, true},
		{"adj", PartOfSpeechAdjective, true},
		{"Measure Word", PartOfSpeechMeasureWord, true},
		{" verb ", PartOfSpeechVerb, true},
		{"pronoun", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePartOfSpeech(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
