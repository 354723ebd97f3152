package sqlmetrics

import (
	"strings"
	"unicode"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// CollapseQuery joins the fields of query with single spaces.
func CollapseQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// QueryLabel is the "per" label for query: the collapsed statement cut to max
// characters, with "..." marking the cut. A non-positive max keeps everything.
func QueryLabel(query string, max int) string {
	q := CollapseQuery(query)
	if max <= 0 {
		return q
	}

	n := 0
	for i := range q {
		if n == max {
			return strings.TrimRight(q[:i], " ") + "..."
		}
		n++
	}
	return q
}

// StatementOf returns the leading keyword of query in lower case, such as
// "select" or "insert". fallback is returned when query does not start with one.
func StatementOf(query, fallback string) string {
	q := strings.TrimLeft(query, " \t\r\n(")
	end := strings.IndexFunc(q, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(q)
	}
	if end == 0 {
		return fallback
	}
	return strings.ToLower(q[:end])
}
