package agendah

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword is one recurring word of the report range, with its frequency.
type Keyword struct {
	Word  string
	Count int
}

// maxKeywords caps the recurring-words list on the report cover.
const maxKeywords = 8

// keywordRE matches runs of 4+ letters or digits, including the accented
// Latin range, on already-lowercased text.
var keywordRE = regexp.MustCompile(`[a-zà-ú0-9]{4,}`)

// stopWords are common Portuguese filler words excluded from the keyword
// count. The list is fixed; it is part of the report's contract.
var stopWords = map[string]struct{}{
	"para": {}, "porque": {}, "sobre": {}, "com": {}, "como": {},
	"isso": {}, "esse": {}, "essa": {}, "aqui": {}, "mais": {},
	"muito": {}, "hoje": {}, "amanha": {}, "ontem": {}, "nao": {},
	"tudo": {}, "cada": {}, "pois": {}, "onde": {}, "quando": {},
	"tambem": {}, "fazer": {}, "feito": {},
}

// ExtractKeywords tokenizes the given free text and returns the words that
// occur at least twice, most frequent first, capped at maxKeywords. Ties
// keep first-appearance order, which makes the extraction deterministic for
// a fixed input.
func ExtractKeywords(text string) []Keyword {
	words := keywordRE.FindAllString(strings.ToLower(text), -1)

	count := make(map[string]int)
	order := []string{}
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if count[w] == 0 {
			order = append(order, w)
		}
		count[w]++
	}

	keywords := []Keyword{}
	for _, w := range order {
		if count[w] >= 2 {
			keywords = append(keywords, Keyword{Word: w, Count: count[w]})
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// EntryText concatenates the free-text fields of the entries that feed the
// keyword extraction: anchor and notes, in range order.
func EntryText(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Anchor)
		b.WriteString(" ")
		b.WriteString(e.Notes)
		b.WriteString(" ")
	}
	return b.String()
}
