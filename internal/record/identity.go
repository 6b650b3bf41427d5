package record

// Identity is an opaque account identifier, e.g. a Stellar public key
// ("GBBD47...") or a service-account name. The ledger never interprets the
// contents; it only compares identities for equality.
type Identity string

// IsZero reports whether the identity is empty.
func (id Identity) IsZero() bool {
	return id == ""
}

func (id Identity) String() string {
	return string(id)
}
