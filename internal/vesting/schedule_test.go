package vesting

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule ScheduleType
		err      error
	}{
		{
			name: "valid_fixed",
			schedule: ScheduleType{
				TotalAmount:        big.NewInt(1000),
				IsFixedAmount:      true,
				PeriodUnlockAmount: big.NewInt(100),
				ReleasePeriod:      86400,
				ReleaseTicks:       10,
			},
		},
		{
			name: "valid_percent",
			schedule: ScheduleType{
				TotalAmount:   big.NewInt(500),
				UnlockPercent: 25,
				ReleasePeriod: 86400,
				ReleaseTicks:  4,
			},
		},
		{
			name: "zero_ticks",
			schedule: ScheduleType{
				TotalAmount:        big.NewInt(1000),
				IsFixedAmount:      true,
				PeriodUnlockAmount: big.NewInt(100),
				ReleasePeriod:      86400,
			},
			err: ErrZeroTicks,
		},
		{
			name: "zero_period",
			schedule: ScheduleType{
				TotalAmount:        big.NewInt(1000),
				IsFixedAmount:      true,
				PeriodUnlockAmount: big.NewInt(100),
				ReleaseTicks:       10,
			},
			err: ErrZeroTicks,
		},
		{
			name: "zero_total",
			schedule: ScheduleType{
				TotalAmount:        big.NewInt(0),
				IsFixedAmount:      true,
				PeriodUnlockAmount: big.NewInt(100),
				ReleasePeriod:      86400,
				ReleaseTicks:       10,
			},
			err: ErrZeroTotal,
		},
		{
			name: "fixed_total_mismatch",
			schedule: ScheduleType{
				TotalAmount:        big.NewInt(999),
				IsFixedAmount:      true,
				PeriodUnlockAmount: big.NewInt(100),
				ReleasePeriod:      86400,
				ReleaseTicks:       10,
			},
			err: ErrFixedTotalMismatch,
		},
		{
			name: "percent_mismatch",
			schedule: ScheduleType{
				TotalAmount:   big.NewInt(500),
				UnlockPercent: 30,
				ReleasePeriod: 86400,
				ReleaseTicks:  4,
			},
			err: ErrPercentMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.schedule.Validate()
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleClone(t *testing.T) {
	schedule := ScheduleType{
		TotalAmount:        big.NewInt(1000),
		IsFixedAmount:      true,
		PeriodUnlockAmount: big.NewInt(100),
		ReleasePeriod:      86400,
		ReleaseTicks:       10,
	}
	clone := schedule.Clone()
	require.Equal(t, schedule, clone)

	clone.TotalAmount.SetInt64(1)
	assert.Equal(t, big.NewInt(1000), schedule.TotalAmount)
}
