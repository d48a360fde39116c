package gedcom

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher matches tags against shell-style patterns such as "_*" or
// "_{TODO,PLAC}".
type Matcher []glob.Glob

// NewMatcher compiles the patterns. Patterns are matched upper-cased.
func NewMatcher(patterns ...string) (Matcher, error) {
	m := make(Matcher, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(strings.ToUpper(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		m = append(m, g)
	}
	return m, nil
}

// Match reports whether the tag matches any pattern.
func (m Matcher) Match(tag string) bool {
	for _, g := range m {
		if g.Match(tag) {
			return true
		}
	}
	return false
}
