package scanner

import (
	"fmt"
	"regexp"
)

// TagRule assigns Tag to files whose full path matches Pattern from its
// start.
type TagRule struct {
	Pattern string
	Tag     string
}

type compiledRule struct {
	re  *regexp.Regexp
	tag string
}

type compiledRoot struct {
	Root
	rules []compiledRule
}

func compileRules(rules []TagRule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`^(?:` + r.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("compile tag pattern %q: %w", r.Pattern, err)
		}
		out = append(out, compiledRule{re: re, tag: r.Tag})
	}
	return out, nil
}

// classify returns the tag of the first matching rule, or nil.
func (c compiledRoot) classify(path string) *string {
	for _, r := range c.rules {
		if r.re.MatchString(path) {
			tag := r.tag
			return &tag
		}
	}
	return nil
}
