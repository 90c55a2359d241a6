package store

import (
	"errors"
	"fmt"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/db/pebble"
	"github.com/vestlock/vestlock/pkg/serialization/codec"
)

var ErrAddressNotFound = errors.New("the address is not defined")

// Memberships is the durable mapping from address to the ordered set of
// groups it belongs to, plus a per-group member counter used for
// pro-rata division.
type Memberships struct {
	db    db.KVStore
	codec codec.Codec
}

// NewMemberships creates a membership store over the given KVStore.
func NewMemberships(kv db.KVStore) *Memberships {
	return &Memberships{db: kv, codec: &codec.SCALECodec{}}
}

// membershipRecord is the persisted group list of one address,
// in insertion order.
type membershipRecord struct {
	Groups [][]byte
}

// Groups returns the groups an address belongs to, in insertion order.
// An unknown address has no groups.
func (m *Memberships) Groups(addr ledger.Address) ([]vesting.GroupID, error) {
	bytes, err := m.db.Get(makeKey(prefixMembership, addr.Bytes()))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	var rec membershipRecord
	if err := m.codec.Unmarshal(bytes, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal membership: %w", err)
	}
	groups := make([]vesting.GroupID, 0, len(rec.Groups))
	for _, g := range rec.Groups {
		groups = append(groups, vesting.GroupID(g))
	}
	return groups, nil
}

// Has reports whether the address belongs to at least one group.
func (m *Memberships) Has(addr ledger.Address) (bool, error) {
	groups, err := m.Groups(addr)
	if err != nil {
		return false, err
	}
	return len(groups) > 0, nil
}

// AddGroup appends a group to an address's membership and bumps the
// group's member counter. Adding an address already in the group is a
// no-op; the return value reports whether anything changed.
func (m *Memberships) AddGroup(addr ledger.Address, id vesting.GroupID) (bool, error) {
	groups, err := m.Groups(addr)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		if g == id {
			return false, nil
		}
	}
	groups = append(groups, id)

	count, err := m.MemberCount(id)
	if err != nil {
		return false, err
	}

	batch := m.db.NewBatch()
	defer batch.Close()

	if err := m.putGroups(batch, addr, groups); err != nil {
		return false, err
	}
	if err := m.putCounter(batch, id, count+1); err != nil {
		return false, err
	}
	if err := batch.Commit(); err != nil {
		return false, fmt.Errorf("commit membership: %w", err)
	}
	return true, nil
}

// MemberCount returns the current number of members of a group.
// An unknown group has zero members.
func (m *Memberships) MemberCount(id vesting.GroupID) (uint64, error) {
	bytes, err := m.db.Get(makeKey(prefixMemberCount, []byte(id)))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get member count: %w", err)
	}
	var count uint64
	if err := m.codec.Unmarshal(bytes, &count); err != nil {
		return 0, fmt.Errorf("unmarshal member count: %w", err)
	}
	return count, nil
}

// ClearAddressInto adds the removal of an address's membership record to
// a batch, decrementing the member counter of every group it belonged
// to. The cleared groups are returned.
func (m *Memberships) ClearAddressInto(batch db.Batch, addr ledger.Address) ([]vesting.GroupID, error) {
	groups, err := m.Groups(addr)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrAddressNotFound
	}
	for _, id := range groups {
		count, err := m.MemberCount(id)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			// Counter already gone, the group was removed.
			continue
		}
		if err := m.putCounter(batch, id, count-1); err != nil {
			return nil, err
		}
	}
	if err := batch.Delete(makeKey(prefixMembership, addr.Bytes())); err != nil {
		return nil, fmt.Errorf("delete membership: %w", err)
	}
	return groups, nil
}

// TransplantInto adds the move of an address's full membership record to
// a batch. Member counters are untouched: the set of members changes
// identity, not size.
func (m *Memberships) TransplantInto(batch db.Batch, from, to ledger.Address) error {
	groups, err := m.Groups(from)
	if err != nil {
		return err
	}
	if len(groups) > 0 {
		if err := m.putGroups(batch, to, groups); err != nil {
			return err
		}
	}
	if err := batch.Delete(makeKey(prefixMembership, from.Bytes())); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// DeleteCounterInto adds the removal of a group's member counter to a batch.
func (m *Memberships) DeleteCounterInto(batch db.Batch, id vesting.GroupID) error {
	if err := batch.Delete(makeKey(prefixMemberCount, []byte(id))); err != nil {
		return fmt.Errorf("delete member count: %w", err)
	}
	return nil
}

func (m *Memberships) putGroups(batch db.Batch, addr ledger.Address, groups []vesting.GroupID) error {
	rec := membershipRecord{Groups: make([][]byte, 0, len(groups))}
	for _, g := range groups {
		rec.Groups = append(rec.Groups, []byte(g))
	}
	bytes, err := m.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal membership: %w", err)
	}
	if err := batch.Put(makeKey(prefixMembership, addr.Bytes()), bytes); err != nil {
		return fmt.Errorf("put membership: %w", err)
	}
	return nil
}

func (m *Memberships) putCounter(batch db.Batch, id vesting.GroupID, count uint64) error {
	bytes, err := m.codec.Marshal(count)
	if err != nil {
		return fmt.Errorf("marshal member count: %w", err)
	}
	if err := batch.Put(makeKey(prefixMemberCount, []byte(id)), bytes); err != nil {
		return fmt.Errorf("put member count: %w", err)
	}
	return nil
}
