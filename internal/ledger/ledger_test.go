package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	raw := make([]byte, AddressSize)
	raw[0] = 0xab
	addr, err := NewAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, addr.Bytes())

	_, err = NewAddress(raw[:31])
	assert.ErrorIs(t, err, ErrAddressSize)
}

func TestAddressFromSeed(t *testing.T) {
	a := AddressFromSeed([]byte("alice"))
	b := AddressFromSeed([]byte("alice"))
	c := AddressFromSeed([]byte("bob"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestTokenIDValidate(t *testing.T) {
	valid := []TokenID{"VSL-a1b2c3", "TOKEN-123456", "ABC-000000", "A1B2C3D4E5-abcdef"}
	for _, id := range valid {
		assert.NoError(t, id.Validate(), "token %q", id)
	}

	invalid := []TokenID{
		"",
		"VSL",
		"vsl-a1b2c3", // lowercase ticker
		"VSL-A1B2C3", // uppercase suffix
		"VS-a1b2c3",  // ticker too short
		"VSL-a1b2c",  // suffix too short
		"TOOLONGTICKR-a1b2c3",
		"VSL_a1b2c3",
	}
	for _, id := range invalid {
		assert.ErrorIs(t, id.Validate(), ErrInvalidTokenID, "token %q", id)
	}
}

func TestManualClock(t *testing.T) {
	clock := &ManualClock{Time: 100}
	assert.Equal(t, uint64(100), clock.Now())
	clock.Advance(50)
	assert.Equal(t, uint64(150), clock.Now())
}

func TestMemoryLedgerRoles(t *testing.T) {
	m := NewMemoryLedger()
	token := TokenID("VSL-a1b2c3")

	_, err := m.Roles(token)
	assert.ErrorIs(t, err, ErrUnknownToken)

	m.GrantRoles(token, RoleSet{CanMint: true, CanBurn: true})
	roles, err := m.Roles(token)
	require.NoError(t, err)
	assert.True(t, roles.CanMint)
	assert.True(t, roles.CanBurn)
}

func TestMemoryLedgerMintAndTransfer(t *testing.T) {
	m := NewMemoryLedger()
	token := TokenID("VSL-a1b2c3")
	to := AddressFromSeed([]byte("recipient"))

	err := m.Mint(token, big.NewInt(100))
	assert.ErrorIs(t, err, ErrMintRoleMissing)

	m.GrantRoles(token, RoleSet{CanMint: true, CanBurn: true})
	require.NoError(t, m.Mint(token, big.NewInt(100)))
	require.NoError(t, m.Mint(token, big.NewInt(50)))
	assert.Equal(t, big.NewInt(150), m.Supply(token))

	require.NoError(t, m.Transfer(token, to, big.NewInt(70)))
	assert.Equal(t, big.NewInt(70), m.BalanceOf(token, to))
}
