package store

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/testutils"
	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db/pebble"
)

func TestStatesRoundTrip(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	states := NewStates(kv)

	_, err = states.Get()
	assert.ErrorIs(t, err, ErrStateNotFound)
	initialized, err := states.Has()
	require.NoError(t, err)
	assert.False(t, initialized)

	expected := vesting.State{
		Token:               ledger.TokenID("VSL-a1b2c3"),
		Owner:               testutils.RandomAddress(t),
		ActivationTimestamp: 1700000000,
		SetupOpen:           true,
		TotalSupply:         big.NewInt(1_000_000),
	}
	require.NoError(t, states.Put(expected))

	got, err := states.Get()
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	initialized, err = states.Has()
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestStatesPutInto(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	states := NewStates(kv)
	state := vesting.State{
		Token:       ledger.TokenID("VSL-a1b2c3"),
		Owner:       testutils.RandomAddress(t),
		SetupOpen:   false,
		TotalSupply: new(big.Int),
	}

	batch := kv.NewBatch()
	defer batch.Close()
	require.NoError(t, states.PutInto(batch, state))

	_, err = states.Get()
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, batch.Commit())
	got, err := states.Get()
	require.NoError(t, err)
	assert.False(t, got.SetupOpen)
}
