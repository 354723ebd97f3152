package pathnorm

import "errors"

// ErrInvalidRule is returned by New when a rule pattern does not compile or a
// replacement token would not survive sanitizing.
var ErrInvalidRule = errors.New("invalid normalization rule")
