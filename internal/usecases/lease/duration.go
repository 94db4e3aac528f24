package lease

import (
	"regexp"
	"strconv"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
)

// durationTokenRe matches the duration grammar of the claim command: bare
// digits or digits with an h/d suffix. "8" and "8h" are hours, "2d" is
// days.
var durationTokenRe = regexp.MustCompile(`^(\d+)(h|d)?$`)

// ParseDurationToken turns a human-entered duration token into a claim
// window in hours. Tokens that don't match the grammar, including the empty
// token for an omitted argument, fall back to the default window rather
// than erroring.
func ParseDurationToken(token string) float64 {
	m := durationTokenRe.FindStringSubmatch(token)
	if m == nil {
		return entities.DefaultClaimDurationHours
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return entities.DefaultClaimDurationHours
	}
	if m[2] == "d" {
		return float64(n * 24)
	}
	return float64(n)
}
