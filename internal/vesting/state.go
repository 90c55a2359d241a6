package vesting

import (
	"math/big"

	"github.com/vestlock/vestlock/internal/ledger"
)

// State is the global lifecycle record of the release ledger. It is
// written once at initialization and then mutated only through the
// controller: the setup flag flips open to closed exactly once, and the
// total supply tracks the sum of all live groups' allocations.
type State struct {
	// Token being released. Immutable after initialization.
	Token ledger.TokenID
	// Owner is the only identity allowed to perform admin operations.
	Owner ledger.Address
	// ActivationTimestamp is the clock origin for all schedule
	// arithmetic, stamped at initialization.
	ActivationTimestamp uint64
	// SetupOpen is true during the administrative setup period.
	SetupOpen bool
	// TotalSupply is the sum of all live groups' TotalAmount.
	TotalSupply *big.Int
}
