package store

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlock/vestlock/internal/testutils"
	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db/pebble"
)

func TestSchedulesPutGet(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	schedules := NewSchedules(kv)
	id := testutils.RandomGroupID(t)

	total, ok := new(big.Int).SetString("5000000000000000000000000", 10)
	require.True(t, ok)
	perTick, ok := new(big.Int).SetString("500000000000000000000000", 10)
	require.True(t, ok)

	expected := vesting.ScheduleType{
		TotalAmount:        total,
		IsFixedAmount:      true,
		PeriodUnlockAmount: perTick,
		ReleasePeriod:      86400,
		ReleaseTicks:       10,
	}
	require.NoError(t, schedules.Put(id, expected))

	got, err := schedules.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 0, expected.TotalAmount.Cmp(got.TotalAmount))
	assert.Equal(t, 0, expected.PeriodUnlockAmount.Cmp(got.PeriodUnlockAmount))
	assert.Equal(t, expected.ReleasePeriod, got.ReleasePeriod)
	assert.Equal(t, expected.ReleaseTicks, got.ReleaseTicks)
	assert.True(t, got.IsFixedAmount)
}

func TestSchedulesGetUnknown(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	schedules := NewSchedules(kv)

	_, err = schedules.Get(vesting.GroupID("missing"))
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	exists, err := schedules.Has(vesting.GroupID("missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSchedulesDelete(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	schedules := NewSchedules(kv)
	id := testutils.RandomGroupID(t)
	require.NoError(t, schedules.Put(id, testutils.FixedSchedule(100, 86400, 10)))

	batch := kv.NewBatch()
	defer batch.Close()
	require.NoError(t, schedules.DeleteInto(batch, id))
	require.NoError(t, batch.Commit())

	_, err = schedules.Get(id)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestSchedulesGroupIDs(t *testing.T) {
	kv, err := pebble.NewMemStore()
	require.NoError(t, err)
	defer kv.Close()

	schedules := NewSchedules(kv)
	require.NoError(t, schedules.Put(vesting.GroupID("advisors"), testutils.FixedSchedule(10, 3600, 5)))
	require.NoError(t, schedules.Put(vesting.GroupID("team"), testutils.FixedSchedule(100, 86400, 10)))

	ids, err := schedules.GroupIDs()
	require.NoError(t, err)
	assert.Equal(t, []vesting.GroupID{"advisors", "team"}, ids)
}
