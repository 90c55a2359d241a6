package store

// Prefix constants for all record kinds sharing the key-value namespace
const (
	prefixState byte = iota + 1
	prefixSchedule
	prefixMembership
	prefixMemberCount
	prefixClaimedBalance
	prefixChangeRequest
)

// PrefixToString converts a prefix byte to a string
func PrefixToString(p byte) string {
	switch p {
	case prefixState:
		return "state"
	case prefixSchedule:
		return "schedule"
	case prefixMembership:
		return "membership"
	case prefixMemberCount:
		return "memberCount"
	case prefixClaimedBalance:
		return "claimedBalance"
	case prefixChangeRequest:
		return "changeRequest"
	default:
		return "unknown"
	}
}

// makeKey creates a key from a prefix and an identifier
func makeKey(prefix byte, id []byte) []byte {
	key := make([]byte, 1+len(id))
	key[0] = prefix
	copy(key[1:], id)
	return key
}
