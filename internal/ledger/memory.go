package ledger

import (
	"errors"
	"math/big"
)

var (
	ErrMintRoleMissing     = errors.New("local mint role not set")
	ErrTransferRoleMissing = errors.New("local transfer role not set")
	ErrUnknownToken        = errors.New("unknown token identifier")
)

// MemoryLedger is an in-process TokenLedger used by tests and the
// inspector's demo mode. It tracks the minted supply and per-address
// balances of each token.
type MemoryLedger struct {
	roles    map[TokenID]RoleSet
	supply   map[TokenID]*big.Int
	balances map[TokenID]map[Address]*big.Int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		roles:    make(map[TokenID]RoleSet),
		supply:   make(map[TokenID]*big.Int),
		balances: make(map[TokenID]map[Address]*big.Int),
	}
}

// GrantRoles registers the capabilities held for a token.
func (m *MemoryLedger) GrantRoles(token TokenID, roles RoleSet) {
	m.roles[token] = roles
}

func (m *MemoryLedger) Roles(token TokenID) (RoleSet, error) {
	roles, ok := m.roles[token]
	if !ok {
		return RoleSet{}, ErrUnknownToken
	}
	return roles, nil
}

func (m *MemoryLedger) Mint(token TokenID, amount *big.Int) error {
	roles, ok := m.roles[token]
	if !ok || !roles.CanMint {
		return ErrMintRoleMissing
	}
	supply, ok := m.supply[token]
	if !ok {
		supply = new(big.Int)
		m.supply[token] = supply
	}
	supply.Add(supply, amount)
	return nil
}

func (m *MemoryLedger) Transfer(token TokenID, to Address, amount *big.Int) error {
	if _, ok := m.roles[token]; !ok {
		return ErrUnknownToken
	}
	balances, ok := m.balances[token]
	if !ok {
		balances = make(map[Address]*big.Int)
		m.balances[token] = balances
	}
	balance, ok := balances[to]
	if !ok {
		balance = new(big.Int)
		balances[to] = balance
	}
	balance.Add(balance, amount)
	return nil
}

// Supply returns the total minted supply of a token.
func (m *MemoryLedger) Supply(token TokenID) *big.Int {
	supply, ok := m.supply[token]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(supply)
}

// BalanceOf returns the balance transferred to an address so far.
func (m *MemoryLedger) BalanceOf(token TokenID, addr Address) *big.Int {
	balances, ok := m.balances[token]
	if !ok {
		return new(big.Int)
	}
	balance, ok := balances[addr]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(balance)
}
