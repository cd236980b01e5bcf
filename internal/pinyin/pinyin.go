// Package pinyin converts tone-numbered pinyin into tone-marked pinyin.
package pinyin

import (
	"regexp"
	"strings"
)

var syllablePattern = regexp.MustCompile(`([a-zA-Z]+)([1-4])$`)

var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'A': {'Ā', 'Á', 'Ǎ', 'À'},
	'e': {'ē', 'é', 'ě', 'è'},
	'E': {'Ē', 'É', 'Ě', 'È'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'I': {'Ī', 'Í', 'Ǐ', 'Ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'O': {'Ō', 'Ó', 'Ǒ', 'Ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'U': {'Ū', 'Ú', 'Ǔ', 'Ù'},
	'v': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'V': {'Ǖ', 'Ǘ', 'Ǚ', 'Ǜ'},
}

// ToneMarks converts text such as "ni3hao3" into "nǐhǎo". Parts that do not
// end in a syllable followed by a tone digit 1-4 are kept as they are.
func ToneMarks(text string) string {
	var b strings.Builder
	for _, part := range split(text) {
		b.WriteString(convertPart(part))
	}
	return b.String()
}

// split cuts text after every ASCII digit.
func split(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			parts = append(parts, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

func convertPart(part string) string {
	m := syllablePattern.FindStringSubmatchIndex(part)
	if m == nil {
		return part
	}
	syllable := part[m[2]:m[3]]
	tone := part[m[4]] - '1'

	idx := pickVowel(syllable)
	if idx < 0 {
		return part
	}
	marked := toneMarks[rune(syllable[idx])][tone]
	return part[:m[2]] + syllable[:idx] + string(marked) + syllable[idx+1:]
}

// pickVowel returns the index of the first a, e, o, u or v in the syllable,
// falling back to the first i. The syllable is ASCII only.
func pickVowel(syllable string) int {
	first := -1
	for i := 0; i < len(syllable); i++ {
		switch syllable[i] {
		case 'a', 'e', 'o', 'u', 'v', 'A', 'E', 'O', 'U', 'V':
			return i
		case 'i', 'I':
			if first < 0 {
				first = i
			}
		}
	}
	return first
}
