package zip32

// AccountID is a type-safe account identifier. Accounts are 31-bit unsigned
// integers and are always treated as hardened in derivation paths.
type AccountID struct {
	id uint32
}

// NewAccountID returns the AccountID for id, or ErrOutOfRange if id does not
// fit in 31 bits.
func NewAccountID(id uint32) (AccountID, error) {
	if id >= HardenedKeyStart {
		return AccountID{}, ErrOutOfRange
	}

	return AccountID{id: id}, nil
}

// Uint32 returns the raw account number.
func (a AccountID) Uint32() uint32 {
	return a.id
}

// ChildIndex returns the hardened child index at which this account is
// derived.
func (a AccountID) ChildIndex() ChildIndex {
	return Hardened(a.id)
}

// Scope narrows the visibility or usage of a viewing key or address to a
// level below "full".
type Scope uint8

const (
	// ScopeExternal is used for wallet-external operations, namely
	// deriving addresses to give to other users in order to receive
	// funds.
	ScopeExternal Scope = iota

	// ScopeInternal is used for wallet-internal operations, such as
	// creating change notes, auto-shielding, and note management.
	ScopeInternal
)

// String returns a human readable name for the scope.
func (s Scope) String() string {
	switch s {
	case ScopeExternal:
		return "external"
	case ScopeInternal:
		return "internal"
	default:
		return "unknown"
	}
}
