package presenters

import (
	"fmt"
	"strings"
	"time"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
)

// LeasePresenter renders lease state as Slack message text.
type LeasePresenter struct {
	catalog  *entities.Catalog
	location *time.Location
}

// NewLeasePresenter creates a presenter rendering times in the given
// display timezone.
func NewLeasePresenter(catalog *entities.Catalog, location *time.Location) *LeasePresenter {
	return &LeasePresenter{catalog: catalog, location: location}
}

// FormatSince renders a claim timestamp for a "since" annotation: a short
// clock time when the claim happened today, otherwise the abbreviated
// weekday.
func (p *LeasePresenter) FormatSince(claimedAt, now time.Time) string {
	claimedAt = claimedAt.In(p.location)
	now = now.In(p.location)

	cy, cm, cd := claimedAt.Date()
	ny, nm, nd := now.Date()
	if cy == ny && cm == nm && cd == nd {
		return strings.ToLower(claimedAt.Format("3:04PM"))
	}
	return claimedAt.Format("Mon")
}

// FormatDurationHours renders a claim window: "8h" under a day, otherwise
// "2d" or "2d 3h" when there's a remainder.
func (p *LeasePresenter) FormatDurationHours(hours float64) string {
	h := int(hours)
	if h < 24 {
		return fmt.Sprintf("%dh", h)
	}
	days, rem := h/24, h%24
	if rem == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, rem)
}

// ClaimConfirmation is the slash-command response after a successful claim.
// Claim messages echo the window in raw hours so the exact number the lease
// was stored with is visible.
func (p *LeasePresenter) ClaimConfirmation(l *entities.Lease) string {
	return fmt.Sprintf("You have *%s* for %dh", l.Environment(), int(l.DurationHours()))
}

// ClaimNotification is the channel announcement after a claim.
func (p *LeasePresenter) ClaimNotification(l *entities.Lease) string {
	return fmt.Sprintf("%s is using *%s* for %dh", l.Username(), l.Environment(), int(l.DurationHours()))
}

// ReleaseConfirmation is the slash-command response after a release.
func (p *LeasePresenter) ReleaseConfirmation(environment string) string {
	return fmt.Sprintf("Released *%s*", environment)
}

// ReleaseNotification is the channel announcement after a release.
func (p *LeasePresenter) ReleaseNotification(username, environment string) string {
	return fmt.Sprintf("%s is no longer using *%s*", username, environment)
}

// ActiveList renders the plain "list" output: active environments in
// catalog declaration order, or an everything-free message.
func (p *LeasePresenter) ActiveList(leases []*entities.Lease, now time.Time) string {
	byEnv := leasesByEnvironment(leases)

	var parts []string
	for _, name := range p.catalog.All() {
		l, ok := byEnv[name]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("*%s* (%s since %s, %s)",
			l.Environment(), l.Username(), p.FormatSince(l.ClaimedAt(), now), p.FormatDurationHours(l.DurationHours())))
	}
	if len(parts) == 0 {
		return "Everything is free, take one!"
	}
	return "Active environments: " + strings.Join(parts, ", ")
}

// FullList renders the "list all" output: every catalog entry in
// declaration order, one per line, so the fixed-purpose tail stays visually
// grouped. Free environments are marked as such.
func (p *LeasePresenter) FullList(leases []*entities.Lease, now time.Time) string {
	byEnv := leasesByEnvironment(leases)

	lines := make([]string, 0, p.catalog.Len())
	for _, name := range p.catalog.All() {
		if l, ok := byEnv[name]; ok {
			lines = append(lines, fmt.Sprintf("*%s*: %s since %s (%s)",
				name, l.Username(), p.FormatSince(l.ClaimedAt(), now), p.FormatDurationHours(l.DurationHours())))
		} else {
			lines = append(lines, fmt.Sprintf("*%s*: free", name))
		}
	}
	return strings.Join(lines, "\n")
}

// HelpText enumerates the supported commands. Any unrecognized input is
// answered with this.
func (p *LeasePresenter) HelpText() string {
	return strings.Join([]string{
		"Usage:",
		"`claim <environment> [<duration>]` - claim an environment (duration like `12`, `12h` or `2d`; default 8h)",
		"`free <environment>` - release an environment you're done with",
		"`list [all]` - show active claims; `all` includes free environments",
	}, "\n")
}

func leasesByEnvironment(leases []*entities.Lease) map[string]*entities.Lease {
	byEnv := make(map[string]*entities.Lease, len(leases))
	for _, l := range leases {
		byEnv[l.Environment()] = l
	}
	return byEnv
}
