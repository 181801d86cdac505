package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cadence controls how often a recurring contest spawns its next instance.
type Cadence string

const (
	CadenceNone    Cadence = "none"
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

func (c Cadence) Valid() bool {
	switch c {
	case CadenceNone, CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

// Recurring reports whether the cadence spawns instances at all.
func (c Cadence) Recurring() bool {
	return c == CadenceDaily || c == CadenceWeekly || c == CadenceMonthly
}

// Next shifts t forward by one cadence step. Monthly uses calendar-month
// arithmetic clamped to the end of the target month (Jan 31 -> Feb 28),
// never rolling over into the following month.
func (c Cadence) Next(t time.Time) time.Time {
	switch c {
	case CadenceDaily:
		return t.AddDate(0, 0, 1)
	case CadenceWeekly:
		return t.AddDate(0, 0, 7)
	case CadenceMonthly:
		return addMonthsClamped(t, 1)
	}
	return t
}

// Previous shifts t backward by one cadence step. It is the inverse
// convention used for availability windows and generation due dates:
// the same calendar arithmetic as Next, applied in the other direction.
func (c Cadence) Previous(t time.Time) time.Time {
	switch c {
	case CadenceDaily:
		return t.AddDate(0, 0, -1)
	case CadenceWeekly:
		return t.AddDate(0, 0, -7)
	case CadenceMonthly:
		return addMonthsClamped(t, -1)
	}
	return t
}

// addMonthsClamped adds months to t, clamping the day of month so the
// result stays inside the target month. time.AddDate alone normalizes
// Jan 31 + 1 month into March, which is never what a schedule wants.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		hour, min, sec, t.Nanosecond(), t.Location())
}

// AttributeAny is the wildcard accepted-value meaning "no restriction".
const AttributeAny = "any"

// Attributes maps an eligibility category (e.g. "gender", "hair_color")
// to the set of accepted values, or [AttributeAny].
type Attributes map[string][]string

// Clone returns a deep copy; generated contest instances must never share
// the originating row's map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		vals := make([]string, len(v))
		copy(vals, v)
		out[k] = vals
	}
	return out
}

// Matches reports whether a profile's attribute values satisfy every
// requirement. Missing profile values fail unless the requirement is the
// wildcard.
func (a Attributes) Matches(profile map[string]string) bool {
	for category, accepted := range a {
		if len(accepted) == 0 {
			continue
		}
		ok := false
		for _, v := range accepted {
			if strings.EqualFold(v, AttributeAny) ||
				strings.EqualFold(v, profile[category]) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer so Attributes persists as JSONB.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("attributes: cannot scan %T", src)
}

var (
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrInvalidCadence  = errors.New("invalid cadence")
	ErrInvalidCapacity = errors.New("max participants must be positive")
	ErrNegativeCost    = errors.New("cost must not be negative")
)

// Contest is either a one-time event, a self-generating recurring event,
// or a non-joinable template that spawns child instances on a cadence.
type Contest struct {
	ID                  int         `db:"id" json:"id"`
	Title               string      `db:"title" json:"title"`
	Category            string      `db:"category" json:"category"`
	Image               *string     `db:"image" json:"image"`
	Attributes          Attributes  `db:"attributes" json:"attributes"`
	MaxParticipants     int         `db:"max_participants" json:"max_participants"`
	StartTime           time.Time   `db:"start_time" json:"start_time"`
	EndTime             time.Time   `db:"end_time" json:"end_time"`
	Cadence             Cadence     `db:"cadence" json:"cadence"`
	ParentContestID     *int        `db:"parent_contest_id" json:"parent_contest_id"`
	IsRecurringTemplate bool        `db:"is_recurring_template" json:"is_recurring_template"`
	NextGenerationDate  *time.Time  `db:"next_generation_date" json:"next_generation_date"`
	Cost                float64     `db:"cost" json:"cost"`
	IsActive            bool        `db:"is_active" json:"is_active"`
	CreatedBy           int         `db:"created_by" json:"created_by"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
}

// Validate checks creation-time invariants.
func (c *Contest) Validate() error {
	if !c.Cadence.Valid() {
		return ErrInvalidCadence
	}
	if !c.EndTime.After(c.StartTime) {
		return ErrEndBeforeStart
	}
	if c.MaxParticipants <= 0 {
		return ErrInvalidCapacity
	}
	if c.Cost < 0 {
		return ErrNegativeCost
	}
	return nil
}

// AvailableFrom returns the instant joining opens. One-time contests open
// the moment they are created; cadence-bearing contests open one cadence
// step before their start.
func (c *Contest) AvailableFrom() time.Time {
	if !c.Cadence.Recurring() {
		return c.CreatedAt
	}
	return c.Cadence.Previous(c.StartTime)
}

// IsAvailableForJoining reports whether participants may join at now.
// Templates are never joinable; mid-contest joining stays open until the
// end time passes.
func (c *Contest) IsAvailableForJoining(now time.Time) bool {
	if !c.IsActive || c.IsRecurringTemplate {
		return false
	}
	if now.After(c.EndTime) {
		return false
	}
	return !now.Before(c.AvailableFrom())
}

// NextGeneration returns the instant the next child instance is due, or
// nil for non-recurring contests. The due date always sits one cadence
// step before the start it will produce.
func (c *Contest) NextGeneration() *time.Time {
	if !c.Cadence.Recurring() {
		return nil
	}
	due := c.Cadence.Previous(c.StartTime)
	return &due
}

// NextOccurrence returns the schedule of the instance that would follow
// this one.
func (c *Contest) NextOccurrence() (start, end time.Time) {
	return c.Cadence.Next(c.StartTime), c.Cadence.Next(c.EndTime)
}

// ContestParticipant links a profile to a contest, unique per pair.
// Contributors carry the entry image they compete with; voters join with
// no image.
type ContestParticipant struct {
	ID           int       `db:"id" json:"id"`
	ContestID    int       `db:"contest_id" json:"contest_id"`
	ProfileID    int       `db:"profile_id" json:"profile_id"`
	EntryImageID *int      `db:"entry_image_id" json:"entry_image_id"`
	AutoEntry    bool      `db:"auto_entry" json:"auto_entry"`
	JoinedAt     time.Time `db:"joined_at" json:"joined_at"`
}
