package analysis

import "strings"

// DefaultFillers is the English lexicon used when no other is configured.
var DefaultFillers = []string{
	"um", "uh", "ah", "er", "erm",
	"like", "you know", "sort of", "kind of",
	"basically", "actually", "literally",
	"i mean", "i guess", "i think", "i think that", "i suppose",
}

// Lexicon is an immutable, case-insensitive set of filler words and phrases.
// Phrases are stored in their tokenized form so that matching ignores
// punctuation and spacing differences.
type Lexicon struct {
	phrases map[string]struct{}
	maxLen  int
}

// NewLexicon builds a lexicon. Entries that tokenize to nothing are ignored
// and duplicates collapse.
func NewLexicon(phrases ...string) *Lexicon {
	l := &Lexicon{phrases: make(map[string]struct{}, len(phrases))}
	for _, p := range phrases {
		toks := Tokenize(p)
		if len(toks) == 0 {
			continue
		}
		l.phrases[strings.Join(toks, " ")] = struct{}{}
		if len(toks) > l.maxLen {
			l.maxLen = len(toks)
		}
	}
	return l
}

// DefaultLexicon returns a lexicon built from DefaultFillers.
func DefaultLexicon() *Lexicon { return NewLexicon(DefaultFillers...) }

// Len reports the number of distinct entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.phrases)
}

// Contains reports whether phrase (in any case) is in the lexicon.
func (l *Lexicon) Contains(phrase string) bool {
	if l == nil {
		return false
	}
	_, ok := l.phrases[strings.Join(Tokenize(phrase), " ")]
	return ok
}

// FillerMatch is one occurrence of a lexicon entry in a text.
type FillerMatch struct {
	Phrase string `json:"phrase" yaml:"phrase"`
	// Token is the index of the first matched word in Tokenize(text).
	Token int `json:"token" yaml:"token"`
}

// Scan walks the tokenized text left to right. At each position the longest
// lexicon entry starting there wins and the scan resumes after it, so
// "i think that" shadows "i think" and matches never overlap.
func (l *Lexicon) Scan(text string) []FillerMatch {
	if l.Len() == 0 {
		return nil
	}
	toks := Tokenize(text)
	var matches []FillerMatch
	for i := 0; i < len(toks); {
		n := l.longestAt(toks, i)
		if n == 0 {
			i++
			continue
		}
		matches = append(matches, FillerMatch{Phrase: strings.Join(toks[i:i+n], " "), Token: i})
		i += n
	}
	return matches
}

func (l *Lexicon) longestAt(toks []string, i int) int {
	for n := min(l.maxLen, len(toks)-i); n > 0; n-- {
		if _, ok := l.phrases[strings.Join(toks[i:i+n], " ")]; ok {
			return n
		}
	}
	return 0
}

// DetectFillers returns each distinct filler found in text, lower-cased, in
// order of first appearance. The result is empty, never nil, when nothing
// matches.
func DetectFillers(text string, lexicon *Lexicon) []string {
	return distinctFillers(lexicon.Scan(text))
}

func distinctFillers(matches []FillerMatch) []string {
	found := []string{}
	seen := map[string]struct{}{}
	for _, m := range matches {
		if _, ok := seen[m.Phrase]; ok {
			continue
		}
		seen[m.Phrase] = struct{}{}
		found = append(found, m.Phrase)
	}
	return found
}

// CountFillers tallies every occurrence per filler.
func CountFillers(matches []FillerMatch) map[string]int {
	counts := make(map[string]int, len(matches))
	for _, m := range matches {
		counts[m.Phrase]++
	}
	return counts
}
