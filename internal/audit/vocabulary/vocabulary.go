// Package vocabulary defines the fixed term lists behind the phrase flagger.
//
// The lists are deliberately literal: flagging is transparent, rule-based
// substring matching so the rule list itself is the documentation. The
// vocabulary is exportable as-is (see ExportCSV) and can be overridden from
// a YAML file for deployments with their own standards.
package vocabulary

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category classifies a flagged term.
type Category string

const (
	// CategoryVague marks phrases that convey a non-specific,
	// hard-to-substantiate performance judgment.
	CategoryVague Category = "Vague"

	// CategoryBias marks phrases associated with protected-characteristic
	// stereotyping or identity-coded language.
	CategoryBias Category = "Bias"
)

// Rule is one vocabulary entry: a term and its category.
type Rule struct {
	Term     string
	Category Category
}

// Vocabulary is an ordered list of rules. Order matters: the flagger emits
// matches in rule order, so the list doubles as the audit trail of which
// rule fired first.
type Vocabulary struct {
	rules []Rule
}

// defaultVague and defaultBias are the built-in v2 rule lists.
var defaultVague = []string{
	"hard worker", "good attitude", "average", "improve communication", "team player",
	"works well under pressure", "strong potential", "fit", "not a good fit",
}

var defaultBias = []string{
	"young", "old", "energetic", "emotional", "bossy", "cultural fit", "girls", "guys", "aggressive",
}

// Default returns the built-in vocabulary: vague terms first, then bias terms.
func Default() *Vocabulary {
	return build(defaultVague, defaultBias)
}

// build normalizes terms for the scanner: matching is against a lower-cased
// comment, so terms must be lower-cased too, and an empty term would match
// at every position.
func build(vague, bias []string) *Vocabulary {
	rules := make([]Rule, 0, len(vague)+len(bias))
	add := func(terms []string, category Category) {
		for _, t := range terms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			rules = append(rules, Rule{Term: t, Category: category})
		}
	}
	add(vague, CategoryVague)
	add(bias, CategoryBias)
	return &Vocabulary{rules: rules}
}

// rulesFile is the on-disk override format.
type rulesFile struct {
	Vague []string `yaml:"vague"`
	Bias  []string `yaml:"bias"`
}

// LoadFile reads a YAML rules file and returns the vocabulary it defines,
// replacing the built-in lists entirely.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	v := build(rf.Vague, rf.Bias)
	if v.Len() == 0 {
		return nil, fmt.Errorf("rules file %s defines no terms", path)
	}
	return v, nil
}

// Rules returns the rules in definition order.
func (v *Vocabulary) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	copy(out, v.rules)
	return out
}

// Len returns the number of rules.
func (v *Vocabulary) Len() int { return len(v.rules) }

// ExportCSV writes the vocabulary as `term,category` rows, the transparency
// export offered to auditors.
func (v *Vocabulary) ExportCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"term", "category"}); err != nil {
		return err
	}
	for _, r := range v.rules {
		if err := writer.Write([]string{r.Term, string(r.Category)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
