// Package flagger scans free-text review comments for vocabulary terms.
package flagger

import (
	"strings"

	"fairlens/internal/audit/vocabulary"
)

// PhraseFlag is one detected occurrence of a vocabulary term.
type PhraseFlag struct {
	Phrase   string              `json:"phrase"`
	Category vocabulary.Category `json:"category"`
	Index    int                 `json:"index"`
}

// Flagger scans comments against a fixed vocabulary.
type Flagger struct {
	vocab *vocabulary.Vocabulary
}

func New(vocab *vocabulary.Vocabulary) *Flagger {
	return &Flagger{vocab: vocab}
}

// Scan returns every occurrence of every vocabulary term in comment,
// matched case-insensitively against a lower-cased copy. Each term is
// scanned independently over the whole comment; occurrences of the same
// term do not overlap (the search resumes after each match), but a shorter
// term contained in a longer one still matches on its own.
//
// Flags come out in vocabulary order (all hits of the first rule, then the
// second, ...), not document order. Consumers that need which rule fired
// rely on this; none depend on positional ordering.
func (f *Flagger) Scan(comment string) []PhraseFlag {
	if comment == "" {
		return nil
	}
	lowered := strings.ToLower(comment)

	var flags []PhraseFlag
	for _, rule := range f.vocab.Rules() {
		start := 0
		for {
			idx := strings.Index(lowered[start:], rule.Term)
			if idx == -1 {
				break
			}
			at := start + idx
			flags = append(flags, PhraseFlag{
				Phrase:   rule.Term,
				Category: rule.Category,
				Index:    at,
			})
			start = at + len(rule.Term)
		}
	}
	return flags
}
