// Package release orchestrates the token-release lifecycle: group and
// membership administration during the setup period, the one-way close
// of that period, and claim settlement afterwards.
//
// Every operation takes the verified caller identity supplied by the
// host and either completes fully or fails with a typed Error and no
// state mutation. Multi-record writes go through storage batches.
package release

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/vestlock/vestlock/internal/accrual"
	"github.com/vestlock/vestlock/internal/ledger"
	"github.com/vestlock/vestlock/internal/store"
	"github.com/vestlock/vestlock/internal/vesting"
	"github.com/vestlock/vestlock/pkg/db"
	"github.com/vestlock/vestlock/pkg/log"
)

// Controller is the administrative and user-facing surface of the
// release ledger.
type Controller struct {
	db          db.KVStore
	states      *store.States
	schedules   *store.Schedules
	memberships *store.Memberships
	claims      *store.Claims
	engine      *accrual.Engine
	clock       ledger.Clock
	tokens      ledger.TokenLedger
	logger      zerolog.Logger
}

// New wires a controller over a KVStore and the host collaborators.
func New(kv db.KVStore, clock ledger.Clock, tokens ledger.TokenLedger) *Controller {
	schedules := store.NewSchedules(kv)
	memberships := store.NewMemberships(kv)
	return &Controller{
		db:          kv,
		states:      store.NewStates(kv),
		schedules:   schedules,
		memberships: memberships,
		claims:      store.NewClaims(kv),
		engine:      accrual.New(schedules, memberships),
		clock:       clock,
		tokens:      tokens,
		logger:      log.Ledger,
	}
}

// Init stamps the ledger with its token, owner and activation timestamp
// and opens the setup period. It can run at most once.
func (c *Controller) Init(owner ledger.Address, token ledger.TokenID) error {
	initialized, err := c.states.Has()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	if err := token.Validate(); err != nil {
		return ErrInvalidToken
	}

	state := vesting.State{
		Token:               token,
		Owner:               owner,
		ActivationTimestamp: c.clock.Now(),
		SetupOpen:           true,
		TotalSupply:         new(big.Int),
	}
	if err := c.states.Put(state); err != nil {
		return err
	}

	c.logger.Info().
		Str("token", token.String()).
		Uint64("activation", state.ActivationTimestamp).
		Msg("release ledger initialized")
	return nil
}

// AddGroup defines a new group with its release schedule and adds its
// allocation to the token total supply. Admin, setup period only.
func (c *Controller) AddGroup(caller ledger.Address, id vesting.GroupID, schedule vesting.ScheduleType) error {
	state, err := c.adminSetupState(caller)
	if err != nil {
		return err
	}
	exists, err := c.schedules.Has(id)
	if err != nil {
		return err
	}
	if exists {
		return ErrGroupExists
	}
	if err := schedule.Validate(); err != nil {
		return asReleaseError(err)
	}

	state.TotalSupply.Add(state.TotalSupply, schedule.TotalAmount)

	batch := c.db.NewBatch()
	defer batch.Close()
	if err := c.schedules.PutInto(batch, id, schedule); err != nil {
		return err
	}
	if err := c.states.PutInto(batch, state); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit group: %w", err)
	}

	c.logger.Info().
		Str("group", string(id)).
		Str("total", schedule.TotalAmount.String()).
		Uint64("ticks", schedule.ReleaseTicks).
		Msg("group added")
	return nil
}

// RemoveGroup deletes a group, subtracting its allocation from the
// token total supply and dropping its member counter. Addresses still
// referencing the group accrue nothing from it afterwards. Admin, setup
// period only.
func (c *Controller) RemoveGroup(caller ledger.Address, id vesting.GroupID) error {
	state, err := c.adminSetupState(caller)
	if err != nil {
		return err
	}
	schedule, err := c.schedules.Get(id)
	if err != nil {
		return asReleaseError(err)
	}

	state.TotalSupply.Sub(state.TotalSupply, schedule.TotalAmount)

	batch := c.db.NewBatch()
	defer batch.Close()
	if err := c.schedules.DeleteInto(batch, id); err != nil {
		return err
	}
	if err := c.memberships.DeleteCounterInto(batch, id); err != nil {
		return err
	}
	if err := c.states.PutInto(batch, state); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit group removal: %w", err)
	}

	c.logger.Info().Str("group", string(id)).Msg("group removed")
	return nil
}

// AddUserGroup assigns an address to a group. Assigning an address
// already in the group is a no-op. Admin, setup period only.
func (c *Controller) AddUserGroup(caller ledger.Address, addr ledger.Address, id vesting.GroupID) error {
	if _, err := c.adminSetupState(caller); err != nil {
		return err
	}
	exists, err := c.schedules.Has(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGroupNotFound
	}

	added, err := c.memberships.AddGroup(addr, id)
	if err != nil {
		return err
	}
	if added {
		c.logger.Info().
			Str("group", string(id)).
			Str("address", addr.String()).
			Msg("member added")
	}
	return nil
}

// RemoveUser clears an address entirely: memberships, member-counter
// contributions and claimed balance. Admin, setup period only.
func (c *Controller) RemoveUser(caller ledger.Address, addr ledger.Address) error {
	if _, err := c.adminSetupState(caller); err != nil {
		return err
	}

	batch := c.db.NewBatch()
	defer batch.Close()
	groups, err := c.memberships.ClearAddressInto(batch, addr)
	if err != nil {
		return asReleaseError(err)
	}
	if err := c.claims.ClearBalanceInto(batch, addr); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit user removal: %w", err)
	}

	c.logger.Info().
		Str("address", addr.String()).
		Int("groups", len(groups)).
		Msg("member removed")
	return nil
}

// EndSetupPeriod closes the setup period for good. It verifies the mint
// and burn roles on the token, mints the full token supply in one shot,
// then flips the flag. A second call fails, so the supply can never be
// minted twice. Admin only.
func (c *Controller) EndSetupPeriod(caller ledger.Address) error {
	state, err := c.loadState()
	if err != nil {
		return err
	}
	if err := c.requireOwner(state, caller); err != nil {
		return err
	}
	if !state.SetupOpen {
		return ErrSetupEnded
	}

	roles, err := c.tokens.Roles(state.Token)
	if err != nil {
		return fmt.Errorf("query token roles: %w", err)
	}
	if !roles.CanMint {
		return ErrMintRoleNotSet
	}
	if !roles.CanBurn {
		return ErrBurnRoleNotSet
	}

	if err := c.tokens.Mint(state.Token, state.TotalSupply); err != nil {
		return fmt.Errorf("mint supply: %w", err)
	}

	state.SetupOpen = false
	if err := c.states.Put(state); err != nil {
		return err
	}

	c.logger.Info().
		Str("token", state.Token.String()).
		Str("supply", state.TotalSupply.String()).
		Msg("setup period ended, supply minted")
	return nil
}

// ClaimTokens settles the caller's accrued entitlement: it transfers
// the delta between the current claimable total and what was already
// claimed, then records the new balance. Post-setup only.
func (c *Controller) ClaimTokens(caller ledger.Address) (*big.Int, error) {
	state, err := c.loadState()
	if err != nil {
		return nil, err
	}
	if state.SetupOpen {
		return nil, ErrSetupActive
	}

	total, err := c.engine.ComputeClaimable(caller, state.ActivationTimestamp, c.clock.Now())
	if err != nil {
		return nil, err
	}
	claimed, err := c.claims.Balance(caller)
	if err != nil {
		return nil, err
	}
	if total.Cmp(claimed) <= 0 {
		return nil, ErrNothingToClaim
	}
	delta := new(big.Int).Sub(total, claimed)

	// The balance is committed only after the ledger confirms the
	// transfer; a failed transfer leaves the claim fully retryable.
	if err := c.tokens.Transfer(state.Token, caller, delta); err != nil {
		return nil, fmt.Errorf("transfer claim: %w", err)
	}
	if err := c.claims.SetBalance(caller, total); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("address", caller.String()).
		Str("amount", delta.String()).
		Msg("tokens claimed")
	return delta, nil
}

// VerifyClaimableTokens returns what the caller could claim right now,
// net of the already claimed balance, without mutating anything.
func (c *Controller) VerifyClaimableTokens(caller ledger.Address) (*big.Int, error) {
	state, err := c.loadState()
	if err != nil {
		return nil, err
	}
	total, err := c.engine.ComputeClaimable(caller, state.ActivationTimestamp, c.clock.Now())
	if err != nil {
		return nil, err
	}
	claimed, err := c.claims.Balance(caller)
	if err != nil {
		return nil, err
	}
	if total.Cmp(claimed) <= 0 {
		return new(big.Int), nil
	}
	return total.Sub(total, claimed), nil
}

// RequestAddressChange registers the caller's wish to receive future
// claims at a new address, overwriting any earlier request. The change
// takes effect only when the owner approves it. Post-setup only.
func (c *Controller) RequestAddressChange(caller ledger.Address, newAddr ledger.Address) error {
	state, err := c.loadState()
	if err != nil {
		return err
	}
	if state.SetupOpen {
		return ErrSetupActive
	}
	return c.claims.SetRequest(caller, newAddr)
}

// VerifyAddressChange returns the caller's pending target address.
func (c *Controller) VerifyAddressChange(caller ledger.Address) (ledger.Address, error) {
	target, err := c.claims.Request(caller)
	if err != nil {
		return ledger.Address{}, asReleaseError(err)
	}
	return target, nil
}

// ApproveAddressChange transplants membership and claimed balance from
// oldAddr to its requested target and clears the request, atomically.
// Admin, post-setup only.
func (c *Controller) ApproveAddressChange(caller ledger.Address, oldAddr ledger.Address) error {
	state, err := c.loadState()
	if err != nil {
		return err
	}
	if err := c.requireOwner(state, caller); err != nil {
		return err
	}
	if state.SetupOpen {
		return ErrSetupActive
	}

	target, err := c.claims.Request(oldAddr)
	if err != nil {
		return asReleaseError(err)
	}

	batch := c.db.NewBatch()
	defer batch.Close()
	if err := c.memberships.TransplantInto(batch, oldAddr, target); err != nil {
		return err
	}
	if err := c.claims.TransplantBalanceInto(batch, oldAddr, target); err != nil {
		return err
	}
	if err := c.claims.ClearRequestInto(batch, oldAddr); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit address change: %w", err)
	}

	c.logger.Info().
		Str("from", oldAddr.String()).
		Str("to", target.String()).
		Msg("address change approved")
	return nil
}

// TokenIdentifier returns the token being released.
func (c *Controller) TokenIdentifier() (ledger.TokenID, error) {
	state, err := c.loadState()
	if err != nil {
		return "", err
	}
	return state.Token, nil
}

// TokenTotalSupply returns the sum of all live groups' allocations.
func (c *Controller) TokenTotalSupply() (*big.Int, error) {
	state, err := c.loadState()
	if err != nil {
		return nil, err
	}
	return state.TotalSupply, nil
}

func (c *Controller) loadState() (vesting.State, error) {
	state, err := c.states.Get()
	if errors.Is(err, store.ErrStateNotFound) {
		return vesting.State{}, ErrNotInitialized
	}
	if err != nil {
		return vesting.State{}, err
	}
	return state, nil
}

// adminSetupState loads the state and checks the common admin-mutation
// preconditions: the caller owns the ledger and setup is still open.
func (c *Controller) adminSetupState(caller ledger.Address) (vesting.State, error) {
	state, err := c.loadState()
	if err != nil {
		return vesting.State{}, err
	}
	if err := c.requireOwner(state, caller); err != nil {
		return vesting.State{}, err
	}
	if !state.SetupOpen {
		return vesting.State{}, ErrSetupEnded
	}
	return state, nil
}

func (c *Controller) requireOwner(state vesting.State, caller ledger.Address) error {
	if caller != state.Owner {
		return ErrNotOwner
	}
	return nil
}

// asReleaseError translates store and schedule sentinel errors into the
// typed failures surfaced to callers.
func asReleaseError(err error) error {
	switch {
	case errors.Is(err, vesting.ErrZeroTicks):
		return ErrZeroTicks
	case errors.Is(err, vesting.ErrZeroTotal):
		return ErrZeroTotal
	case errors.Is(err, vesting.ErrFixedTotalMismatch):
		return ErrBadFixedTotal
	case errors.Is(err, vesting.ErrPercentMismatch):
		return ErrBadPercent
	case errors.Is(err, store.ErrScheduleNotFound):
		return ErrGroupNotFound
	case errors.Is(err, store.ErrAddressNotFound):
		return ErrAddressNotFound
	case errors.Is(err, store.ErrRequestNotFound):
		return ErrNoChangeRequest
	default:
		return err
	}
}
