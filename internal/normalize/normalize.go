// Package normalize turns free text into a canonical token string for
// matching: case-folding, diacritic folding, punctuation stripping,
// stopword removal, and dictionary lemmatization. The transform is pure
// and deterministic; running it twice yields the same result.
package normalize

import (
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer converts raw text to a normalized token string.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
	stopwords  map[string]struct{}
	fold       transform.Transformer
}

// New creates a Normalizer with the English dictionary and the default
// stopword set (standard English list plus domain additions).
func New() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}

	stop := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		stop[w] = struct{}{}
	}

	return &Normalizer{
		lemmatizer: lem,
		stopwords:  stop,
		fold:       transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}, nil
}

// Normalize lower-cases, strips everything that is not a letter, digit or
// space, drops stopwords, lemmatizes the survivors, and rejoins them with
// single spaces. Empty input yields an empty string.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized token sequence for text.
func (n *Normalizer) Tokens(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if folded, _, err := transform.String(n.fold, text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	var tokens []string
	for _, word := range strings.Fields(b.String()) {
		if _, skip := n.stopwords[word]; skip {
			continue
		}
		lemma := n.lemmatizer.Lemma(word)
		// A lemma can land on a stopword ("cans" -> "can"); dropping it
		// here keeps the transform idempotent.
		if _, skip := n.stopwords[lemma]; skip {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return tokens
}

// TokenSet returns the normalized tokens of text as a set.
func (n *Normalizer) TokenSet(text string) map[string]struct{} {
	tokens := n.Tokens(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
