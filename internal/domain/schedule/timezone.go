// Package schedule holds the time arithmetic of reminders: zone normalisation,
// recurrence advancement and reconciliation of submitted reminder sets.
package schedule

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const utcZone = "UTC"

// LocalLayout renders reminder times for humans.
const LocalLayout = "2006-01-02 15:04"

var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ErrUnparsableTime is returned when a local time string matches no accepted layout.
var ErrUnparsableTime = errors.New("unparsable local time")

// Normalizer converts wall-clock times in IANA zones to UTC instants and back.
// Unknown zone names degrade to UTC; empty names take the default zone.
type Normalizer struct {
	defaultName string
	defaultLoc  *time.Location
	locations   sync.Map // zone name -> *time.Location
}

// NewNormalizer creates a Normalizer whose empty-zone default is defaultZone.
// An unresolvable default falls back to UTC.
func NewNormalizer(defaultZone string) *Normalizer {
	n := &Normalizer{defaultName: utcZone, defaultLoc: time.UTC}

	if loc, name, ok := n.lookup(defaultZone); ok {
		n.defaultName = name
		n.defaultLoc = loc
	}

	return n
}

// DefaultZone returns the zone used for empty zone names.
func (n *Normalizer) DefaultZone() string {
	return n.defaultName
}

// Resolve returns the location for name and the zone name that should be stored.
// The boolean is false when the name could not be resolved and UTC was substituted.
func (n *Normalizer) Resolve(name string) (*time.Location, string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return n.defaultLoc, n.defaultName, true
	}

	if loc, canonical, ok := n.lookup(name); ok {
		return loc, canonical, true
	}

	return time.UTC, utcZone, false
}

func (n *Normalizer) lookup(name string) (*time.Location, string, bool) {
	name = strings.TrimSpace(name)
	// "Local" would silently bind reminders to the server's zone.
	if name == "" || name == "Local" {
		return nil, "", false
	}

	if cached, ok := n.locations.Load(name); ok {
		loc := cached.(*time.Location)

		return loc, loc.String(), true
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", false
	}
	n.locations.Store(name, loc)

	return loc, loc.String(), true
}

// ToUTC interprets the wall clock of local (its own location is ignored) in zone
// and returns the UTC instant together with the stored zone name.
func (n *Normalizer) ToUTC(local time.Time, zone string) (time.Time, string) {
	loc, name, _ := n.Resolve(zone)

	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)

	return wall.UTC(), name
}

// ToLocal converts a UTC instant into the wall clock of zone.
func (n *Normalizer) ToLocal(instant time.Time, zone string) time.Time {
	loc, _, _ := n.Resolve(zone)

	return instant.In(loc)
}

// FormatLocal renders instant in zone with LocalLayout.
func (n *Normalizer) FormatLocal(instant time.Time, zone string) string {
	return n.ToLocal(instant, zone).Format(LocalLayout)
}

// ParseLocal parses a client-supplied time. Values carrying an offset are taken
// as instants; values without one are wall-clock times in zone.
func (n *Normalizer) ParseLocal(value, zone string) (time.Time, string, error) {
	value = strings.TrimSpace(value)
	_, name, _ := n.Resolve(zone)

	if instant, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return instant.UTC(), name, nil
	}

	for _, layout := range wallClockLayouts {
		if wall, err := time.Parse(layout, value); err == nil {
			utc, stored := n.ToUTC(wall, zone)

			return utc, stored, nil
		}
	}

	return time.Time{}, name, errors.Wrapf(ErrUnparsableTime, "%q", value)
}
