package entities

import (
	"strings"
)

// Catalog is the fixed, ordered registry of valid environment names. The
// leading AutoClaimable section holds the pool environments eligible for
// automatic assignment; the Fixed section holds purpose-bound environments
// (staging, demo) that are only ever claimed explicitly.
//
// The catalog is immutable after construction and is built once at process
// start from configuration.
type Catalog struct {
	autoClaimable []string
	fixed         []string
	members       map[string]struct{}
}

// NewCatalog builds a catalog from the auto-claimable and fixed name lists.
// Names are stored lowercased; declaration order is preserved for listing
// and auto-pick.
func NewCatalog(autoClaimable, fixed []string) *Catalog {
	c := &Catalog{
		autoClaimable: make([]string, 0, len(autoClaimable)),
		fixed:         make([]string, 0, len(fixed)),
		members:       make(map[string]struct{}, len(autoClaimable)+len(fixed)),
	}
	for _, name := range autoClaimable {
		name = strings.ToLower(name)
		c.autoClaimable = append(c.autoClaimable, name)
		c.members[name] = struct{}{}
	}
	for _, name := range fixed {
		name = strings.ToLower(name)
		c.fixed = append(c.fixed, name)
		c.members[name] = struct{}{}
	}
	return c
}

// IsValid reports whether name is a catalog member. Matching is
// case-insensitive.
func (c *Catalog) IsValid(name string) bool {
	_, ok := c.members[strings.ToLower(name)]
	return ok
}

// Canonical returns the catalog form (lowercase) of name. It does not check
// membership; pair with IsValid.
func (c *Catalog) Canonical(name string) string {
	return strings.ToLower(name)
}

// AutoClaimable returns the auto-claimable environments in declaration order.
func (c *Catalog) AutoClaimable() []string {
	return c.autoClaimable
}

// All returns every environment in declaration order, auto-claimable pool
// first, then the fixed-purpose tail.
func (c *Catalog) All() []string {
	all := make([]string, 0, len(c.autoClaimable)+len(c.fixed))
	all = append(all, c.autoClaimable...)
	all = append(all, c.fixed...)
	return all
}

// Len returns the total number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.autoClaimable) + len(c.fixed)
}
