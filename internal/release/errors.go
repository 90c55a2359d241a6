package release

import "errors"

// Kind classifies an operation failure so callers can branch on it
// without parsing the reason string.
type Kind uint8

const (
	InvalidInput Kind = iota + 1
	PermissionDenied
	PreconditionFailed
	NothingToClaim
	AuthorizationMissing
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case PermissionDenied:
		return "permission denied"
	case PreconditionFailed:
		return "precondition failed"
	case NothingToClaim:
		return "nothing to claim"
	case AuthorizationMissing:
		return "authorization missing"
	default:
		return "unknown"
	}
}

// Error is a typed operation failure: a machine-checkable kind plus a
// human-readable reason. Failures abort the call with no state mutation.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Is matches release errors structurally so the sentinel values below
// work with errors.Is across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Reason == e.Reason
}

// KindOf extracts the failure kind from an error chain, or zero if the
// error did not originate in the release controller.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

var (
	ErrInvalidToken       = &Error{InvalidInput, "invalid token provided"}
	ErrZeroTicks          = &Error{InvalidInput, "the schedule must have at least 1 unlock period"}
	ErrZeroTotal          = &Error{InvalidInput, "the schedule must have a positive number of total tokens released"}
	ErrBadFixedTotal      = &Error{InvalidInput, "the total number of tokens is invalid"}
	ErrBadPercent         = &Error{InvalidInput, "the final percentage is invalid"}
	ErrNotOwner           = &Error{PermissionDenied, "caller is not the owner"}
	ErrAlreadyInitialized = &Error{PreconditionFailed, "the ledger is already initialized"}
	ErrNotInitialized     = &Error{PreconditionFailed, "the ledger is not initialized"}
	ErrSetupEnded         = &Error{PreconditionFailed, "setup period has ended"}
	ErrSetupActive        = &Error{PreconditionFailed, "setup period is still active"}
	ErrGroupExists        = &Error{PreconditionFailed, "the group already exists"}
	ErrGroupNotFound      = &Error{PreconditionFailed, "the group does not exist"}
	ErrAddressNotFound    = &Error{PreconditionFailed, "the address is not defined"}
	ErrNoChangeRequest    = &Error{PreconditionFailed, "the address does not have a change request"}
	ErrNothingToClaim     = &Error{NothingToClaim, "this address cannot currently claim any more tokens"}
	ErrMintRoleNotSet     = &Error{AuthorizationMissing, "local mint role not set"}
	ErrBurnRoleNotSet     = &Error{AuthorizationMissing, "local burn role not set"}
)
