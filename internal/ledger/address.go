package ledger

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

const AddressSize = 32

var ErrAddressSize = errors.New("address must be exactly 32 bytes")

// Address is the opaque, comparable identity of an external caller,
// as verified by the host before a call is dispatched.
type Address [AddressSize]byte

// NewAddress builds an address from its raw 32-byte representation.
func NewAddress(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, ErrAddressSize
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// AddressFromSeed derives an address deterministically from an arbitrary
// seed, used by tests and tooling to mint stable identities.
func AddressFromSeed(seed []byte) Address {
	return Address(blake2b.Sum256(seed))
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}
