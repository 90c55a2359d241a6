// Package accrual converts elapsed time into claimable token amounts.
//
// Accrued tokens are divided pro rata by the current member count of
// each group: a group's per-period unlock is floor-divided evenly among
// whoever is registered, so the group total is never exceeded no matter
// how far the clock runs. The computation is O(groups) per call.
package accrual

import (
	"errors"
	"math/big"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/store"
	"github.com/vestlock/vestlock/internal/vesting"
)

// ErrNoMembers signals a live group whose member counter reads zero.
// The membership store keeps counters strictly positive while any
// address references the group, so this is an invariant violation,
// not a user error.
var ErrNoMembers = errors.New("group schedule exists but has no members")

var hundred = big.NewInt(100)

// Engine computes claimable amounts from the schedule and membership
// stores. It never mutates state and may be called in any lifecycle
// phase.
type Engine struct {
	schedules   *store.Schedules
	memberships *store.Memberships
}

func New(schedules *store.Schedules, memberships *store.Memberships) *Engine {
	return &Engine{schedules: schedules, memberships: memberships}
}

// ComputeClaimable returns the cumulative amount addr is entitled to at
// time now (unix seconds), before subtracting anything already claimed.
// Groups the address references but which were removed during setup
// contribute zero.
func (e *Engine) ComputeClaimable(addr ledger.Address, activation, now uint64) (*big.Int, error) {
	groups, err := e.memberships.Groups(addr)
	if err != nil {
		return nil, err
	}

	claimable := new(big.Int)
	for _, id := range groups {
		schedule, err := e.schedules.Get(id)
		if errors.Is(err, store.ErrScheduleNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		members, err := e.memberships.MemberCount(id)
		if err != nil {
			return nil, err
		}
		if members == 0 {
			return nil, ErrNoMembers
		}

		contribution := groupContribution(schedule, members, activation, now)
		claimable.Add(claimable, contribution)
	}
	return claimable, nil
}

// groupContribution computes one group's share for a single member.
// Multiplications happen fully before any division to keep truncation
// error minimal and the result monotone in the period count.
func groupContribution(s vesting.ScheduleType, members, activation, now uint64) *big.Int {
	periods := periodsPassed(s, activation, now)
	if periods == 0 {
		return new(big.Int)
	}

	amount := new(big.Int).SetUint64(periods)
	if s.IsFixedAmount {
		amount.Mul(amount, s.PeriodUnlockAmount)
	} else {
		amount.Mul(amount, s.TotalAmount)
		amount.Mul(amount, new(big.Int).SetUint64(uint64(s.UnlockPercent)))
		amount.Quo(amount, hundred)
	}
	return amount.Quo(amount, new(big.Int).SetUint64(members))
}

// periodsPassed counts completed release periods since activation,
// clamped to the schedule's tick count so accrual stops at the full
// allocation.
func periodsPassed(s vesting.ScheduleType, activation, now uint64) uint64 {
	if now <= activation {
		return 0
	}
	periods := (now - activation) / s.ReleasePeriod
	if periods > s.ReleaseTicks {
		return s.ReleaseTicks
	}
	return periods
}
