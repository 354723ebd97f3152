package pathnorm

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalizer maps raw request paths to label values. The zero value and a nil
// *Normalizer both behave as a normalizer without rules.
type Normalizer struct {
	rules       []compiledRule
	replacement string
}

type compiledRule struct {
	source      Rule
	re          *regexp.Regexp
	replacement string

	// prefix and suffix are the literal text every match starts and ends with.
	// Both are kept when the rest of the match is replaced.
	prefix string
	suffix string
	// literal reports that the whole pattern is a literal string.
	literal bool
	// named holds the indexes of named groups; when set only they are replaced.
	named []int
}

// New compiles cfg into a Normalizer. Any pattern that fails to compile is reported
// as an error wrapping ErrInvalidRule; nothing is deferred to request time.
func New(cfg Config) (*Normalizer, error) {
	replacement := cfg.Replacement
	if replacement == "" {
		replacement = DefaultReplacement
	}
	if err := validateToken(replacement); err != nil {
		return nil, fmt.Errorf("%w: replacement %q: %v", ErrInvalidRule, replacement, err)
	}

	n := &Normalizer{
		rules:       make([]compiledRule, 0, len(cfg.Rules)),
		replacement: replacement,
	}

	for i, rule := range cfg.Rules {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %d has an empty pattern", ErrInvalidRule, i)
		}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%q): %v", ErrInvalidRule, i, rule.Pattern, err)
		}

		cr := compiledRule{
			source:      rule,
			re:          re,
			replacement: rule.Replacement,
		}
		if cr.replacement == "" {
			cr.replacement = replacement
		} else if err := validateToken(cr.replacement); err != nil {
			return nil, fmt.Errorf("%w: rule %d replacement %q: %v", ErrInvalidRule, i, cr.replacement, err)
		}
		cr.prefix, cr.suffix, cr.literal = literalEdges(rule.Pattern)
		for idx, name := range re.SubexpNames() {
			if idx > 0 && name != "" {
				cr.named = append(cr.named, idx)
			}
		}
		n.rules = append(n.rules, cr)
	}

	return n, nil
}

// validateToken rejects replacements that sanitizing the rewritten path would
// mangle or drop.
func validateToken(token string) error {
	switch {
	case !utf8.ValidString(token):
		return fmt.Errorf("invalid UTF-8")
	case strings.TrimSpace(token) != token:
		return fmt.Errorf("surrounding whitespace")
	case strings.ContainsRune(token, '?'):
		return fmt.Errorf("contains '?'")
	case strings.Contains(token, "//"):
		return fmt.Errorf("contains an empty segment")
	case strings.IndexFunc(token, unicode.IsControl) >= 0:
		return fmt.Errorf("contains a control character")
	}
	for _, seg := range strings.Split(token, "/") {
		if seg == "." || seg == ".." {
			return fmt.Errorf("contains a dot segment")
		}
	}
	return nil
}

// literalEdges returns the literal text a match of pattern must begin and end
// with, ignoring anchors, and whether the pattern is nothing but literal text.
func literalEdges(pattern string) (prefix, suffix string, literal bool) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", "", false
	}

	subs := []*syntax.Regexp{re}
	if re.Op == syntax.OpConcat {
		subs = re.Sub
	}

	i, j := 0, len(subs)
	for i < j && (subs[i].Op == syntax.OpBeginText || subs[i].Op == syntax.OpBeginLine) {
		i++
	}
	for j > i && (subs[j-1].Op == syntax.OpEndText || subs[j-1].Op == syntax.OpEndLine) {
		j--
	}

	var pre strings.Builder
	k := i
	for ; k < j && isLiteral(subs[k]); k++ {
		pre.WriteString(string(subs[k].Rune))
	}
	if k == j {
		return pre.String(), "", j > i
	}

	var suf []string
	for l := j - 1; l > k && isLiteral(subs[l]); l-- {
		suf = append([]string{string(subs[l].Rune)}, suf...)
	}
	return pre.String(), strings.Join(suf, ""), false
}

func isLiteral(re *syntax.Regexp) bool {
	return re.Op == syntax.OpLiteral && re.Flags&syntax.FoldCase == 0
}

// MustNew is like New but panics on an invalid configuration. It is meant for
// package-level variables and tests.
func MustNew(cfg Config) *Normalizer {
	n, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return n
}

// Rules returns a copy of the rules the normalizer was built from.
func (n *Normalizer) Rules() []Rule {
	if n == nil {
		return nil
	}
	out := make([]Rule, len(n.rules))
	for i, r := range n.rules {
		out[i] = r.source
	}
	return out
}

// Replacement returns the normalizer-wide replacement token.
func (n *Normalizer) Replacement() string {
	if n == nil || n.replacement == "" {
		return DefaultReplacement
	}
	return n.replacement
}
