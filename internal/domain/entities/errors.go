package entities

import (
	"errors"
	"fmt"
)

// ErrNoCapacity is returned by auto-claim when every auto-claimable
// environment is currently leased. Callers surface it as a conflict; there
// is no queueing or retry.
var ErrNoCapacity = errors.New("no free environment available")

// ErrInvalidEnvironment indicates a name that is not a catalog member.
type ErrInvalidEnvironment struct {
	Name string
}

func (e ErrInvalidEnvironment) Error() string {
	return fmt.Sprintf("invalid environment: %q", e.Name)
}
