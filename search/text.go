package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Western stop words to drop during tokenization.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "in": true,
	"that": true, "have": true, "it": true, "for": true, "not": true, "on": true,
	"with": true, "as": true, "you": true, "do": true, "at": true, "this": true,
	"but": true, "by": true, "from": true, "or": true, "if": true, "so": true,
	"can": true, "will": true, "your": true, "how": true, "what": true,
	"when": true, "why": true, "who": true, "all": true, "about": true,
	"into": true, "than": true, "then": true, "them": true, "they": true,
	"there": true, "their": true, "has": true, "had": true, "out": true,
}

// CJK stop words for Chinese corpus content and queries.
var cjkStopWords = map[string]bool{
	"的": true, "了": true, "是": true, "在": true, "我": true, "有": true,
	"和": true, "就": true, "不": true, "人": true, "都": true, "一": true,
	"上": true, "也": true, "很": true, "到": true, "说": true, "要": true,
	"去": true, "你": true, "会": true, "着": true, "没": true, "看": true,
	"好": true, "这": true, "那": true, "吗": true, "什么": true, "我们": true,
	"一个": true, "自己": true, "可以": true, "这个": true, "怎么": true,
}

// Matches every rune that is neither a letter, a digit, nor whitespace.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// Tokenizer normalizes raw text into searchable tokens: lowercase, strip
// punctuation, split on whitespace runs, drop short tokens and stop words.
// The zero value is not usable; construct with NewTokenizer or NewCJKTokenizer.
type Tokenizer struct {
	stops    map[string]bool
	minRunes int
	cjk      bool
}

// NewTokenizer returns a tokenizer for western text. Tokens of two runes or
// fewer and stop-listed tokens are dropped.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{stops: stopWords, minRunes: 3}
}

// NewCJKTokenizer returns a tokenizer that additionally segments Han runs
// into overlapping bigrams, since CJK text carries no word boundaries.
// Single-rune tokens are kept there only when they survive the stop list.
func NewCJKTokenizer() *Tokenizer {
	merged := make(map[string]bool, len(stopWords)+len(cjkStopWords))
	for w := range stopWords {
		merged[w] = true
	}
	for w := range cjkStopWords {
		merged[w] = true
	}
	return &Tokenizer{stops: merged, minRunes: 3, cjk: true}
}

// Tokenize normalizes text into filtered tokens. Pure and deterministic.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, field := range strings.Fields(cleaned) {
		if t.cjk && containsHan(field) {
			for _, tok := range segmentHan(field) {
				if !t.stops[tok] {
					tokens = append(tokens, tok)
				}
			}
			continue
		}
		if len([]rune(field)) < t.minRunes || t.stops[field] {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// Tokenize normalizes text with the default western tokenizer.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

var defaultTokenizer = NewTokenizer()

// NGrams produces all contiguous token windows of length n, joined by single
// spaces. Returns nil when fewer than n tokens are available or n < 1.
func NGrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// segmentHan splits a mixed token into CJK bigrams and non-CJK runs.
// A lone Han rune is emitted as-is so short queries still match.
func segmentHan(s string) []string {
	var out []string
	runes := []rune(s)

	var latin []rune
	flushLatin := func() {
		if len(latin) > 0 {
			out = append(out, string(latin))
			latin = latin[:0]
		}
	}

	for i := 0; i < len(runes); i++ {
		if !unicode.Is(unicode.Han, runes[i]) {
			latin = append(latin, runes[i])
			continue
		}
		flushLatin()
		if i+1 < len(runes) && unicode.Is(unicode.Han, runes[i+1]) {
			out = append(out, string(runes[i:i+2]))
		} else if i == 0 || !unicode.Is(unicode.Han, runes[i-1]) {
			out = append(out, string(runes[i]))
		}
	}
	flushLatin()
	return out
}
