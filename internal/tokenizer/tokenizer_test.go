package tokenizer

import (
	"reflect"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"with punctuation", "The cat sat on the mat.", []string{"the", "cat", "sat", "on", "the", "mat"}},
		{"with numbers", "item123 test", []string{"item123", "test"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"underscore is a word character", "my_variable_name", []string{"my_variable_name"}},
		{"hyphen separates", "state-of-the-art", []string{"state", "of", "the", "art"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"camelCase is not split", "theOffice", []string{"theoffice"}},
		{"apostrophe separates", "don't", []string{"don", "t"}},
		{"only symbols", "!@#$%^", []string{}},
		{"newlines and tabs", "one\ntwo\tthree\r\nfour", []string{"one", "two", "three", "four"}},
		{"unicode letters", "Café CRÈME", []string{"café", "crème"}},
		{"trailing token without separator", "end", []string{"end"}},
		{"superscript digit stays in word", "x²", []string{"x²"}},
		{"vulgar fraction stays in word", "1½", []string{"1½"}},
		{"roman numeral is a word", "Ⅻ", []string{"ⅻ"}},
		{"mixed numeric forms", "x² 1½ Ⅻ", []string{"x²", "1½", "ⅻ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokens_Restartable(t *testing.T) {
	seq := Tokens("A cat and a dog.")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestTokens_EarlyStop(t *testing.T) {
	var got []string
	for token := range Tokens("one two three four") {
		got = append(got, token)
		if len(got) == 2 {
			break
		}
	}
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCountTerm(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want int
	}{
		{"two occurrences different case", "The cat sat on the mat.", "the", 2},
		{"substring of another word is not counted", "catalog cat cats", "cat", 1},
		{"uppercase term", "A cat and a dog.", "DOG", 1},
		{"absent", "A cat and a dog.", "zzz", 0},
		{"empty term", "anything", "", 0},
		{"superscript is part of the word", "x² and x", "x²", 1},
		{"plain term not matched inside superscript word", "x² and x", "x", 1},
		{"roman numeral case-insensitive", "Chapter Ⅻ and ⅻ", "ⅻ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountTerm(tt.text, tt.term); got != tt.want {
				t.Errorf("CountTerm(%q, %q) = %d, want %d", tt.text, tt.term, got, tt.want)
			}
		})
	}
}

func TestIsBoundary(t *testing.T) {
	runes := []rune("a cat.")
	if !IsBoundary(runes, -1) || !IsBoundary(runes, len(runes)) {
		t.Error("out of range positions must be boundaries")
	}
	if !IsBoundary(runes, 1) || !IsBoundary(runes, 5) {
		t.Error("space and period must be boundaries")
	}
	if IsBoundary(runes, 2) {
		t.Error("letter must not be a boundary")
	}
	if IsBoundary([]rune("x²"), 1) {
		t.Error("superscript digit must not be a boundary")
	}
}
