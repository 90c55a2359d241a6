package store

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/db/pebble"
)

var ErrRequestNotFound = errors.New("the address does not have a change request")

// Claims tracks the cumulative claimed balance of each address and the
// pending address-change requests. Balances are stored as big-endian
// byte strings; an absent balance is zero.
type Claims struct {
	db db.KVStore
}

// NewClaims creates a claims store over the given KVStore.
func NewClaims(kv db.KVStore) *Claims {
	return &Claims{db: kv}
}

// Balance returns the cumulative tokens already transferred to an
// address. Unknown addresses have a zero balance.
func (c *Claims) Balance(addr ledger.Address) (*big.Int, error) {
	bytes, err := c.db.Get(makeKey(prefixClaimedBalance, addr.Bytes()))
	if errors.Is(err, pebble.ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get claimed balance: %w", err)
	}
	return new(big.Int).SetBytes(bytes), nil
}

// SetBalance stores the cumulative claimed balance of an address.
func (c *Claims) SetBalance(addr ledger.Address, balance *big.Int) error {
	if err := c.db.Put(makeKey(prefixClaimedBalance, addr.Bytes()), balance.Bytes()); err != nil {
		return fmt.Errorf("put claimed balance: %w", err)
	}
	return nil
}

// ClearBalanceInto adds the removal of an address's claimed balance to a batch.
func (c *Claims) ClearBalanceInto(batch db.Batch, addr ledger.Address) error {
	if err := batch.Delete(makeKey(prefixClaimedBalance, addr.Bytes())); err != nil {
		return fmt.Errorf("delete claimed balance: %w", err)
	}
	return nil
}

// TransplantBalanceInto adds the move of a claimed balance from one
// address to another to a batch. The balance is carried over verbatim.
func (c *Claims) TransplantBalanceInto(batch db.Batch, from, to ledger.Address) error {
	balance, err := c.Balance(from)
	if err != nil {
		return err
	}
	if err := batch.Put(makeKey(prefixClaimedBalance, to.Bytes()), balance.Bytes()); err != nil {
		return fmt.Errorf("put claimed balance: %w", err)
	}
	if err := batch.Delete(makeKey(prefixClaimedBalance, from.Bytes())); err != nil {
		return fmt.Errorf("delete claimed balance: %w", err)
	}
	return nil
}

// Request returns the pending change target of an address, or
// ErrRequestNotFound.
func (c *Claims) Request(addr ledger.Address) (ledger.Address, error) {
	bytes, err := c.db.Get(makeKey(prefixChangeRequest, addr.Bytes()))
	if errors.Is(err, pebble.ErrNotFound) {
		return ledger.Address{}, ErrRequestNotFound
	}
	if err != nil {
		return ledger.Address{}, fmt.Errorf("get change request: %w", err)
	}
	target, err := ledger.NewAddress(bytes)
	if err != nil {
		return ledger.Address{}, fmt.Errorf("decode change request: %w", err)
	}
	return target, nil
}

// SetRequest stores the pending change target of an address,
// overwriting any earlier request.
func (c *Claims) SetRequest(addr, target ledger.Address) error {
	if err := c.db.Put(makeKey(prefixChangeRequest, addr.Bytes()), target.Bytes()); err != nil {
		return fmt.Errorf("put change request: %w", err)
	}
	return nil
}

// ClearRequestInto adds the removal of a pending change request to a batch.
func (c *Claims) ClearRequestInto(batch db.Batch, addr ledger.Address) error {
	if err := batch.Delete(makeKey(prefixChangeRequest, addr.Bytes())); err != nil {
		return fmt.Errorf("delete change request: %w", err)
	}
	return nil
}
