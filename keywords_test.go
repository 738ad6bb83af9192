package agendah

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Keyword
	}{
		{
			name: "frequency ordering",
			text: "reunião reunião projeto projeto projeto cliente",
			expected: []Keyword{
				{Word: "projeto", Count: 3},
				{Word: "reunião", Count: 2},
			},
		},
		{
			name:     "single occurrences are dropped",
			text:     "palavra aparece apenas nunca repete",
			expected: []Keyword{},
		},
		{
			name:     "stop words never count",
			text:     "para para para sobre sobre quando quando",
			expected: []Keyword{},
		},
		{
			name:     "short tokens are ignored",
			text:     "oi oi oi até até foz foz",
			expected: []Keyword{},
		},
		{
			name:     "case folds before counting",
			text:     "Entrega ENTREGA entrega",
			expected: []Keyword{{Word: "entrega", Count: 3}},
		},
		{
			name:     "digits count as word characters",
			text:     "nota2024 nota2024",
			expected: []Keyword{{Word: "nota2024", Count: 2}},
		},
		{
			name: "ties keep first appearance order",
			text: "banco banco casa casa",
			expected: []Keyword{
				{Word: "banco", Count: 2},
				{Word: "casa", Count: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractKeywords() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	text := ""
	for _, w := range []string{
		"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golfe", "hotel", "india", "juliett",
	} {
		text += w + " " + w + " "
	}
	got := ExtractKeywords(text)
	if len(got) != maxKeywords {
		t.Errorf("len = %d, want cap %d", len(got), maxKeywords)
	}
}

func TestEntryText(t *testing.T) {
	entries := []Entry{
		{Anchor: "fechar proposta", Notes: "reunião longa"},
		{Anchor: "revisar proposta", Notes: "cliente ligou"},
	}
	got := EntryText(entries)
	want := "fechar proposta reunião longa revisar proposta cliente ligou "
	if got != want {
		t.Errorf("EntryText() = %q, want %q", got, want)
	}
}
