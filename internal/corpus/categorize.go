package corpus

import "strings"

// Categorizer assigns a coarse topic label to a record from its keywords.
// It is only consulted when the record carries no explicit category.
type Categorizer interface {
	Categorize(keywords []string) string
}

// rule maps a topic label to the keywords that trigger it.
type rule struct {
	label    string
	triggers []string
}

// RuleCategorizer labels records by scanning a priority-ordered rule
// table: the first rule with a trigger among the record's keywords wins.
type RuleCategorizer struct {
	rules    []rule
	fallback string
}

// NewRuleCategorizer returns the default campus rule table.
func NewRuleCategorizer() *RuleCategorizer {
	return &RuleCategorizer{
		rules: []rule{
			{label: "fees", triggers: []string{"fee", "tuition", "cost", "price"}},
			{label: "admission", triggers: []string{"admission", "requirement", "apply", "enrollment"}},
			{label: "programs", triggers: []string{"program", "course", "department", "cse", "bba"}},
			{label: "contact", triggers: []string{"contact", "phone", "email", "address"}},
		},
		fallback: "general",
	}
}

// Categorize returns the label of the first matching rule, or the
// fallback label when nothing matches.
func (c *RuleCategorizer) Categorize(keywords []string) string {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[strings.ToLower(kw)] = struct{}{}
	}

	for _, r := range c.rules {
		for _, trigger := range r.triggers {
			if _, ok := set[trigger]; ok {
				return r.label
			}
		}
	}
	return c.fallback
}
