package pathnorm

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize returns the label value for raw, which may carry a query string.
func (n *Normalizer) Normalize(raw string) string {
	p := Sanitize(raw)
	if n == nil || len(n.rules) == 0 {
		return p
	}

	rewritten := p
	for _, rule := range n.rules {
		rewritten = rule.apply(rewritten)
	}
	if rewritten == p {
		return p
	}

	// Rules may leave "//" or a trailing slash behind.
	return Sanitize(rewritten)
}

// NormalizeURL normalizes the path of u. A nil URL yields RootPath.
func (n *Normalizer) NormalizeURL(u *url.URL) string {
	if u == nil {
		return RootPath
	}
	return n.Normalize(u.Path)
}

// Normalize compiles rules and normalizes raw in one step. Callers on a hot path
// should build a Normalizer once with New instead.
func Normalize(raw string, rules ...Rule) (string, error) {
	n, err := New(Config{Rules: rules})
	if err != nil {
		return "", err
	}
	return n.Normalize(raw), nil
}

// Sanitize strips the query string from raw and returns its canonical path form.
func Sanitize(raw string) string {
	p, _, _ := strings.Cut(raw, "?")

	p = strings.ToValidUTF8(p, "")
	p = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, p)

	p = strings.TrimSpace(p)
	if p == "" {
		return RootPath
	}

	// Clean collapses "//", resolves dot segments and drops trailing slashes.
	p = path.Clean("/" + p)

	// "/a /" cleans to "/a ", which must not survive as trailing whitespace.
	for len(p) > 1 {
		if r, _ := utf8.DecodeLastRuneInString(p); !unicode.IsSpace(r) {
			break
		}
		p = path.Clean("/" + strings.TrimSpace(p))
	}
	return p
}

func (r compiledRule) apply(s string) string {
	matches := r.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	replaced := false

	for _, m := range matches {
		for _, span := range r.spans(m) {
			// nested named groups overlap the group that contains them
			if span[0] < last {
				continue
			}
			b.WriteString(s[last:span[0]])
			b.WriteString(r.replacement)
			last = span[1]
			replaced = true
		}
	}

	if !replaced {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// spans returns the byte ranges of one match that are to be replaced.
func (r compiledRule) spans(m []int) [][2]int {
	if m[0] == m[1] {
		return nil
	}

	if len(r.named) > 0 {
		out := make([][2]int, 0, len(r.named))
		for _, i := range r.named {
			start, end := m[2*i], m[2*i+1]
			if start < 0 || start == end {
				continue
			}
			out = append(out, [2]int{start, end})
		}
		return out
	}

	start, end := m[0], m[1]
	if !r.literal {
		start += len(r.prefix)
		end -= len(r.suffix)
	}
	if start >= end {
		return nil
	}
	return [][2]int{{start, end}}
}
