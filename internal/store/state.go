package store

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/db/pebble"
	"github.com/vestlock/vestlock/pkg/serialization/codec"
)

var ErrStateNotFound = errors.New("release ledger is not initialized")

var stateKey = makeKey(prefixState, nil)

// States persists the global lifecycle record of the ledger.
type States struct {
	db    db.KVStore
	codec codec.Codec
}

// NewStates creates a state store over the given KVStore.
func NewStates(kv db.KVStore) *States {
	return &States{db: kv, codec: &codec.SCALECodec{}}
}

// stateRecord is the persisted form of vesting.State.
type stateRecord struct {
	Token               string
	Owner               [ledger.AddressSize]byte
	ActivationTimestamp uint64
	SetupOpen           bool
	TotalSupply         []byte
}

// Get loads the global state, or ErrStateNotFound before initialization.
func (s *States) Get() (vesting.State, error) {
	bytes, err := s.db.Get(stateKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return vesting.State{}, ErrStateNotFound
	}
	if err != nil {
		return vesting.State{}, fmt.Errorf("get state: %w", err)
	}
	var rec stateRecord
	if err := s.codec.Unmarshal(bytes, &rec); err != nil {
		return vesting.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return vesting.State{
		Token:               ledger.TokenID(rec.Token),
		Owner:               ledger.Address(rec.Owner),
		ActivationTimestamp: rec.ActivationTimestamp,
		SetupOpen:           rec.SetupOpen,
		TotalSupply:         new(big.Int).SetBytes(rec.TotalSupply),
	}, nil
}

// Has reports whether the ledger has been initialized.
func (s *States) Has() (bool, error) {
	_, err := s.Get()
	if errors.Is(err, ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Put stores the global state.
func (s *States) Put(state vesting.State) error {
	bytes, err := s.marshal(state)
	if err != nil {
		return err
	}
	if err := s.db.Put(stateKey, bytes); err != nil {
		return fmt.Errorf("put state: %w", err)
	}
	return nil
}

// PutInto adds a state write to a batch.
func (s *States) PutInto(batch db.Batch, state vesting.State) error {
	bytes, err := s.marshal(state)
	if err != nil {
		return err
	}
	if err := batch.Put(stateKey, bytes); err != nil {
		return fmt.Errorf("put state: %w", err)
	}
	return nil
}

func (s *States) marshal(state vesting.State) ([]byte, error) {
	rec := stateRecord{
		Token:               string(state.Token),
		Owner:               [ledger.AddressSize]byte(state.Owner),
		ActivationTimestamp: state.ActivationTimestamp,
		SetupOpen:           state.SetupOpen,
	}
	if state.TotalSupply != nil {
		rec.TotalSupply = state.TotalSupply.Bytes()
	}
	bytes, err := s.codec.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return bytes, nil
}
