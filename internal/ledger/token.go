package ledger

import "errors"

var ErrInvalidTokenID = errors.New("invalid token identifier")

// TokenID identifies the fungible token being released. The host issues
// identifiers of the form TICKER-rrrrrr: a 3-10 character uppercase
// alphanumeric ticker, a dash, and a 6 character lowercase-hex suffix.
type TokenID string

const (
	minTickerLen = 3
	maxTickerLen = 10
	suffixLen    = 6
)

// Validate reports whether the identifier has the shape the host issues.
func (t TokenID) Validate() error {
	s := string(t)
	dash := len(s) - suffixLen - 1
	if dash < minTickerLen || dash > maxTickerLen || s[dash] != '-' {
		return ErrInvalidTokenID
	}
	for i := 0; i < dash; i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return ErrInvalidTokenID
		}
	}
	for i := dash + 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'f') && !(c >= '0' && c <= '9') {
			return ErrInvalidTokenID
		}
	}
	return nil
}

func (t TokenID) String() string {
	return string(t)
}
