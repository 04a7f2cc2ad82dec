package session

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformedIdent is returned when the portal's ident is too short to carry
// a subject id between its type prefix and suffix.
var ErrMalformedIdent = errors.New("malformed ident")

// Token is the credential triple issued by a successful login.
type Token struct {
	Token     string `json:"token"`
	TokenAP   string `json:"tokenAP"`
	StudentID string `json:"studentId"`
}

// IsZero reports whether the token carries no credential.
func (t Token) IsZero() bool {
	return t.Token == ""
}

// StudentIDFromIdent strips exactly one leading and one trailing character
// from ident ("S12345S" -> "12345"). An ident that leaves nothing in between
// is malformed.
func StudentIDFromIdent(ident string) (string, error) {
	if utf8.RuneCountInString(ident) <= 2 {
		return "", fmt.Errorf("%w: %q carries no subject id", ErrMalformedIdent, ident)
	}
	_, first := utf8.DecodeRuneInString(ident)
	_, last := utf8.DecodeLastRuneInString(ident)
	return ident[first : len(ident)-last], nil
}
