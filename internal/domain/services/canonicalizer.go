package services

// UsernameCanonicalizer collapses known aliases and handles to one canonical
// display name. It is a total function: unknown inputs pass through
// unchanged, so callers never need to handle a failure case.
//
// The alias table is static configuration, fixed at process start.
type UsernameCanonicalizer struct {
	aliases map[string]string
}

// NewUsernameCanonicalizer builds a canonicalizer from an alias→canonical
// mapping. A nil map is valid and yields the identity mapping.
func NewUsernameCanonicalizer(aliases map[string]string) *UsernameCanonicalizer {
	return &UsernameCanonicalizer{aliases: aliases}
}

// Canonicalize returns the canonical form of a raw identity string.
func (c *UsernameCanonicalizer) Canonicalize(raw string) string {
	if canonical, ok := c.aliases[raw]; ok {
		return canonical
	}
	return raw
}
