// Package pathnorm turns raw request paths into bounded-cardinality label values.
//
// A request path such as "/users/8812/orders?page=2" is a poor metrics dimension:
// every user ID and every query string becomes a new time series. The Normalizer
// reduces a path to a canonical form and then rewrites its dynamic parts through an
// ordered list of rules, so that "/users/8812" and "/users/17" share one label.
//
// # Pipeline
//
//  1. The query string is dropped at the first '?'.
//  2. The path is sanitized: invalid UTF-8, control characters and surrounding
//     whitespace are removed, a leading slash is ensured, duplicate slashes and dot
//     segments are collapsed and trailing slashes are trimmed.
//  3. Every configured rule is applied in order to the result of the previous one.
//     Rules compose; there is no first-match short circuit.
//
// The result is never empty. An empty or missing path yields "/".
//
// # Rules
//
// A Rule pairs a regular expression with a replacement. When the replacement is empty
// the normalizer's token is used (DefaultReplacement unless configured otherwise).
// What gets replaced depends on the shape of the pattern:
//
//   - By default the literal text every match begins and ends with is kept and
//     the part in between is replaced: `/users/\d+` turns "/users/123" into
//     "/users/foo", and `/users/\d+/orders` turns "/users/7/orders" into
//     "/users/foo/orders". Unnamed groups and alternations are variable text, so
//     `/(users|accounts)/\d+` turns both "/users/1" and "/accounts/2" into "/foo".
//   - With named groups, only their text is replaced:
//     `/orders/(?P<order>\d+)/items/(?P<item>\d+)` turns "/orders/1/items/2" into
//     "/orders/foo/items/foo". A named group inside another one is covered by it.
//   - A purely literal pattern is replaced as a whole. Anchors do not count as text.
//
// Empty matches are ignored, so patterns like `\d*` cannot spray tokens into a path.
//
// Patterns are compiled once by New. A malformed pattern, or a replacement token the
// final sanitizing step would alter (one containing '?', "//", a "." or ".." segment,
// control characters or surrounding whitespace), is a configuration error reported
// there, wrapped in ErrInvalidRule. Normalize itself never fails.
//
// # Example
//
//	n, err := pathnorm.New(pathnorm.Config{
//		Rules: []pathnorm.Rule{
//			{Pattern: `/users/\d+`},
//			{Pattern: `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`, Replacement: ":uuid"},
//		},
//	})
//	if err != nil {
//		return err
//	}
//	n.Normalize("/users/123/?tab=1") // "/users/foo"
//
// A constructed Normalizer holds no mutable state and is safe for concurrent use.
package pathnorm
