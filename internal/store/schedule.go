package store

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/db/pebble"
	"github.com/vestlock/vestlock/pkg/serialization/codec"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// Schedules is the durable mapping from group identifier to its release
// schedule.
type Schedules struct {
	db    db.KVStore
	codec codec.Codec
}

// NewSchedules creates a schedule store over the given KVStore.
func NewSchedules(kv db.KVStore) *Schedules {
	return &Schedules{db: kv, codec: &codec.SCALECodec{}}
}

// scheduleRecord is the persisted form of vesting.ScheduleType; amounts
// are carried as big-endian byte slices.
type scheduleRecord struct {
	TotalAmount        []byte
	IsFixedAmount      bool
	UnlockPercent      uint8
	PeriodUnlockAmount []byte
	ReleasePeriod      uint64
	ReleaseTicks       uint64
}

func toScheduleRecord(s vesting.ScheduleType) scheduleRecord {
	rec := scheduleRecord{
		IsFixedAmount: s.IsFixedAmount,
		UnlockPercent: s.UnlockPercent,
		ReleasePeriod: s.ReleasePeriod,
		ReleaseTicks:  s.ReleaseTicks,
	}
	if s.TotalAmount != nil {
		rec.TotalAmount = s.TotalAmount.Bytes()
	}
	if s.PeriodUnlockAmount != nil {
		rec.PeriodUnlockAmount = s.PeriodUnlockAmount.Bytes()
	}
	return rec
}

func (r scheduleRecord) toSchedule() vesting.ScheduleType {
	return vesting.ScheduleType{
		TotalAmount:        new(big.Int).SetBytes(r.TotalAmount),
		IsFixedAmount:      r.IsFixedAmount,
		UnlockPercent:      r.UnlockPercent,
		PeriodUnlockAmount: new(big.Int).SetBytes(r.PeriodUnlockAmount),
		ReleasePeriod:      r.ReleasePeriod,
		ReleaseTicks:       r.ReleaseTicks,
	}
}

// Put stores the schedule of a group.
func (s *Schedules) Put(id vesting.GroupID, schedule vesting.ScheduleType) error {
	bytes, err := s.codec.Marshal(toScheduleRecord(schedule))
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := s.db.Put(makeKey(prefixSchedule, []byte(id)), bytes); err != nil {
		return fmt.Errorf("put schedule: %w", err)
	}
	return nil
}

// Get retrieves the schedule of a group, or ErrScheduleNotFound.
func (s *Schedules) Get(id vesting.GroupID) (vesting.ScheduleType, error) {
	bytes, err := s.db.Get(makeKey(prefixSchedule, []byte(id)))
	if errors.Is(err, pebble.ErrNotFound) {
		return vesting.ScheduleType{}, ErrScheduleNotFound
	}
	if err != nil {
		return vesting.ScheduleType{}, fmt.Errorf("get schedule: %w", err)
	}
	var rec scheduleRecord
	if err := s.codec.Unmarshal(bytes, &rec); err != nil {
		return vesting.ScheduleType{}, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return rec.toSchedule(), nil
}

// Has reports whether a group is defined.
func (s *Schedules) Has(id vesting.GroupID) (bool, error) {
	_, err := s.Get(id)
	if errors.Is(err, ErrScheduleNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutInto adds a schedule write to a batch.
func (s *Schedules) PutInto(batch db.Batch, id vesting.GroupID, schedule vesting.ScheduleType) error {
	bytes, err := s.codec.Marshal(toScheduleRecord(schedule))
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := batch.Put(makeKey(prefixSchedule, []byte(id)), bytes); err != nil {
		return fmt.Errorf("put schedule: %w", err)
	}
	return nil
}

// DeleteInto adds the removal of a group's schedule to a batch.
func (s *Schedules) DeleteInto(batch db.Batch, id vesting.GroupID) error {
	if err := batch.Delete(makeKey(prefixSchedule, []byte(id))); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// GroupIDs lists every defined group identifier in key order.
func (s *Schedules) GroupIDs() ([]vesting.GroupID, error) {
	startKey := []byte{prefixSchedule}
	endKey := []byte{prefixSchedule + 1}

	iter, err := s.db.NewIterator(startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	var ids []vesting.GroupID
	for iter.Next() {
		if !iter.Valid() {
			break
		}
		key := iter.Key()
		ids = append(ids, vesting.GroupID(key[1:]))
	}
	return ids, nil
}
