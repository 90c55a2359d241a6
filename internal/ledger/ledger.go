// Package ledger defines the host collaborators the release engine
// depends on: caller identity, the clock, and the token ledger that
// mints and moves fungible balances.
package ledger

import "math/big"

// RoleSet describes the local token capabilities granted to the engine's
// issuing identity.
type RoleSet struct {
	CanMint bool
	CanBurn bool
}

// TokenLedger is the external fungible-token ledger. Mint creates new
// supply of the token, Transfer moves it to a destination identity.
// Both fail if the issuing identity lacks the corresponding local role;
// Roles lets the engine check that up front.
type TokenLedger interface {
	Roles(token TokenID) (RoleSet, error)
	Mint(token TokenID, amount *big.Int) error
	Transfer(token TokenID, to Address, amount *big.Int) error
}
