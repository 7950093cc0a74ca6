package validator

import "strings"

// RuleSpec is one parsed rule of a chain.
// Params is nil when the expression has no ':' section.
type RuleSpec struct {
	Name   string
	Params []string
}

// String renders the spec back into expression form.
func (s RuleSpec) String() string {
	if s.Params == nil {
		return s.Name
	}
	return s.Name + ":" + strings.Join(s.Params, ",")
}

// ParseExpression turns "name:p1,p2|other" into an ordered chain.
// Only the first ':' of each rule separates the name from its params;
// params are raw strings with no trimming.
func ParseExpression(expr string) []RuleSpec {
	rules := strings.Split(expr, "|")
	chain := make([]RuleSpec, 0, len(rules))
	for _, rule := range rules {
		parts := strings.SplitN(rule, ":", 2)
		spec := RuleSpec{Name: parts[0]}
		if len(parts) == 2 {
			spec.Params = strings.Split(parts[1], ",")
		}
		chain = append(chain, spec)
	}
	return chain
}

// Normalize parses every field expression. A nil map yields an empty one.
func Normalize(fields map[string]string) map[string][]RuleSpec {
	chains := make(map[string][]RuleSpec, len(fields))
	for field, expr := range fields {
		chains[field] = append(chains[field], ParseExpression(expr)...)
	}
	return chains
}
