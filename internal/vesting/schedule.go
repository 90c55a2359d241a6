// Package vesting holds the core data model of the release ledger:
// group release schedules and the global lifecycle state.
package vesting

import (
	"errors"
	"math/big"
)

// GroupID names a cohort of addresses sharing one release schedule.
type GroupID string

var (
	ErrZeroTicks          = errors.New("the schedule must have at least 1 unlock period")
	ErrZeroTotal          = errors.New("the schedule must have a positive number of total tokens released")
	ErrFixedTotalMismatch = errors.New("the total number of tokens is invalid")
	ErrPercentMismatch    = errors.New("the final percentage is invalid")
)

// ScheduleType is the release rule of one group. A schedule is either
// fixed-amount (PeriodUnlockAmount released every tick) or
// percentage-based (UnlockPercent of TotalAmount released every tick).
type ScheduleType struct {
	// TotalAmount is the number of tokens allocated to the group.
	TotalAmount *big.Int
	// IsFixedAmount selects the fixed-amount form over the percentage form.
	IsFixedAmount bool
	// UnlockPercent of TotalAmount released per tick. Meaningful only
	// when IsFixedAmount is false; UnlockPercent * ReleaseTicks must
	// equal 100.
	UnlockPercent uint8
	// PeriodUnlockAmount released per tick. Meaningful only when
	// IsFixedAmount is true; PeriodUnlockAmount * ReleaseTicks must
	// equal TotalAmount.
	PeriodUnlockAmount *big.Int
	// ReleasePeriod is the duration of one tick in seconds.
	ReleasePeriod uint64
	// ReleaseTicks is the total number of ticks in the schedule.
	ReleaseTicks uint64
}

// Validate checks the consistency invariants a schedule must satisfy at
// definition time.
func (s ScheduleType) Validate() error {
	if s.ReleaseTicks == 0 || s.ReleasePeriod == 0 {
		return ErrZeroTicks
	}
	if s.TotalAmount == nil || s.TotalAmount.Sign() <= 0 {
		return ErrZeroTotal
	}
	ticks := new(big.Int).SetUint64(s.ReleaseTicks)
	if s.IsFixedAmount {
		if s.PeriodUnlockAmount == nil {
			return ErrFixedTotalMismatch
		}
		released := new(big.Int).Mul(s.PeriodUnlockAmount, ticks)
		if released.Cmp(s.TotalAmount) != 0 {
			return ErrFixedTotalMismatch
		}
		return nil
	}
	percent := new(big.Int).Mul(new(big.Int).SetUint64(uint64(s.UnlockPercent)), ticks)
	if percent.Cmp(big.NewInt(100)) != 0 {
		return ErrPercentMismatch
	}
	return nil
}

// Clone returns a deep copy; big.Int fields are never shared.
func (s ScheduleType) Clone() ScheduleType {
	out := s
	if s.TotalAmount != nil {
		out.TotalAmount = new(big.Int).Set(s.TotalAmount)
	}
	if s.PeriodUnlockAmount != nil {
		out.PeriodUnlockAmount = new(big.Int).Set(s.PeriodUnlockAmount)
	}
	return out
}
