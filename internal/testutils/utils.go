package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/vesting"
)

func RandomAddress(t *testing.T) ledger.Address {
	raw := make([]byte, ledger.AddressSize)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	addr, err := ledger.NewAddress(raw)
	require.NoError(t, err)
	return addr
}

func RandomGroupID(t *testing.T) vesting.GroupID {
	raw := make([]byte, 8)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	return vesting.GroupID("group-" + hex.EncodeToString(raw))
}

func RandomAmount(t *testing.T) *big.Int {
	raw := make([]byte, 16)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	return new(big.Int).SetBytes(raw)
}

// FixedSchedule builds a valid fixed-amount schedule releasing perTick
// tokens every period seconds for ticks periods.
func FixedSchedule(perTick int64, period, ticks uint64) vesting.ScheduleType {
	per := big.NewInt(perTick)
	total := new(big.Int).Mul(per, new(big.Int).SetUint64(ticks))
	return vesting.ScheduleType{
		TotalAmount:        total,
		IsFixedAmount:      true,
		PeriodUnlockAmount: per,
		ReleasePeriod:      period,
		ReleaseTicks:       ticks,
	}
}

// PercentSchedule builds a valid percentage schedule releasing percent
// of total every period seconds; percent*ticks must equal 100 for the
// schedule to validate.
func PercentSchedule(total int64, percent uint8, period, ticks uint64) vesting.ScheduleType {
	return vesting.ScheduleType{
		TotalAmount:   big.NewInt(total),
		IsFixedAmount: false,
		UnlockPercent: percent,
		ReleasePeriod: period,
		ReleaseTicks:  ticks,
	}
}
