package enrich

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// CategoryUnlabelled is assigned when no rule matches.
const CategoryUnlabelled = "unlabelled"

// Rule is one categorization predicate. It reports the category it assigns
// and whether it matched; a rule never sees transactions an earlier rule
// already labelled.
type Rule struct {
	Name  string
	Apply func(t model.Transaction) (category string, ok bool)
}

// Classifier evaluates an ordered rule chain against a transaction and
// assigns the first matching category. The order of the rules is part of the
// contract: it is fixed at construction, not registered globally.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a Classifier over the given ordered rules.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the first matching rule's category, or "unlabelled".
// Expects a cleaned transaction with the counterparty already resolved.
func (c *Classifier) Classify(t model.Transaction) string {
	for _, rule := range c.rules {
		if category, ok := rule.Apply(t); ok {
			return category
		}
	}
	return CategoryUnlabelled
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
