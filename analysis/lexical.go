package analysis

import (
	"sort"
	"strings"
)

// mostCommonLimit caps Vocabulary.MostCommon.
const mostCommonLimit = 10

type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Vocabulary measures lexical diversity over every token of a transcript.
type Vocabulary struct {
	TotalWords     int         `json:"total_words" yaml:"total_words"`
	UniqueWords    int         `json:"unique_words" yaml:"unique_words"`
	TypeTokenRatio float64     `json:"type_token_ratio" yaml:"type_token_ratio"`
	Richness       string      `json:"richness" yaml:"richness"`
	MostCommon     []WordCount `json:"most_common" yaml:"most_common"`
}

func AnalyzeVocabulary(text string) Vocabulary {
	toks := Tokenize(text)
	v := Vocabulary{TotalWords: len(toks), Richness: "low", MostCommon: []WordCount{}}
	if len(toks) == 0 {
		return v
	}
	counts := map[string]int{}
	for _, t := range toks {
		counts[t]++
	}
	v.UniqueWords = len(counts)
	v.TypeTokenRatio = float64(v.UniqueWords) / float64(v.TotalWords)
	switch {
	case v.TypeTokenRatio > 0.7:
		v.Richness = "high"
	case v.TypeTokenRatio > 0.5:
		v.Richness = "medium"
	}

	for w, c := range counts {
		v.MostCommon = append(v.MostCommon, WordCount{Word: w, Count: c})
	}
	sort.Slice(v.MostCommon, func(i, j int) bool {
		a, b := v.MostCommon[i], v.MostCommon[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Word < b.Word
	})
	if len(v.MostCommon) > mostCommonLimit {
		v.MostCommon = v.MostCommon[:mostCommonLimit]
	}
	return v
}

var (
	correctionMarkers = NewLexicon("i mean", "that is", "actually", "let me rephrase")
	danglingEndings   = map[string]bool{"of": true, "in": true, "at": true, "to": true, "for": true, "with": true, "by": true}
)

// Patterns counts disfluencies in a transcript.
type Patterns struct {
	// Repetitions is the number of words immediately repeated ("the the").
	Repetitions int `json:"repetitions" yaml:"repetitions"`
	// SelfCorrections counts occurrences of markers such as "i mean".
	SelfCorrections int `json:"self_corrections" yaml:"self_corrections"`
	// IncompleteSentences end on a dangling preposition.
	IncompleteSentences int `json:"incomplete_sentences" yaml:"incomplete_sentences"`
}

func DetectPatterns(text string) Patterns {
	var p Patterns
	toks := Tokenize(text)
	for i := 1; i < len(toks); i++ {
		if toks[i] == toks[i-1] {
			p.Repetitions++
		}
	}
	p.SelfCorrections = len(correctionMarkers.Scan(text))
	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '?' || r == '!' }) {
		words := Tokenize(sentence)
		if len(words) > 1 && danglingEndings[words[len(words)-1]] {
			p.IncompleteSentences++
		}
	}
	return p
}
