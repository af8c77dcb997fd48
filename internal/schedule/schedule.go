// Package schedule implements the call scheduling flow: composing a
// user-selected date and time-of-day into an absolute UTC instant, the
// validation contract that guards it, and the single-flight gate that keeps
// one submission per order in flight at a time.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// MinLeadTime is how far in the future a call must be scheduled. Anything
// closer would be past-due by the time the backend picks it up.
const MinLeadTime = 5 * time.Minute

// Validation errors, surfaced to the operator before any network call
var (
	ErrMissingDate      = errors.New("please select a date for the call")
	ErrMissingAssistant = errors.New("please select an assistant for the call")
	ErrTooSoon          = errors.New("scheduled time must be at least 5 minutes in the future")
)

// Request is one schedule submission as collected from the operator
type Request struct {
	OrderID     string
	AssistantID string
	Date        string // calendar day, "2006-01-02"
	Time        string // 24-hour wall time, "15:04"
	Timezone    string // optional IANA zone; the operator's local clock. Empty means UTC.
}

// ComposeTime builds the 24-hour "15:04" wall time from a 12-hour picker's
// hour, minute and period ("AM"/"PM").
func ComposeTime(hour, minute int, period string) (string, error) {
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid time %d:%02d", hour, minute)
	}

	switch strings.ToUpper(period) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("invalid period %q: must be AM or PM", period)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// Resolve validates the request against the clock reading "now" and returns
// the absolute instant the call should run at. The date and time are
// interpreted in the request's timezone.
func (r Request) Resolve(now time.Time) (time.Time, error) {
	if r.Date == "" {
		return time.Time{}, ErrMissingDate
	}
	if r.AssistantID == "" {
		return time.Time{}, ErrMissingAssistant
	}

	loc := time.UTC
	if r.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(r.Timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timezone %q: %w", r.Timezone, err)
		}
	}

	wallTime := r.Time
	if wallTime == "" {
		wallTime = "14:00"
	}

	instant, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+wallTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time selection: %w", err)
	}

	if !instant.After(now.Add(MinLeadTime)) {
		return time.Time{}, ErrTooSoon
	}

	return instant, nil
}

// ToPayload resolves the request and builds the backend's schedule payload
func (r Request) ToPayload(now time.Time) (models.ScheduleCallRequest, error) {
	instant, err := r.Resolve(now)
	if err != nil {
		return models.ScheduleCallRequest{}, err
	}

	return models.ScheduleCallRequest{
		OrderID:          FormatOrderID(r.OrderID),
		ScheduledTimeUtc: FormatUTC(instant),
		AssistantID:      r.AssistantID,
	}, nil
}

// DisablePast is the date picker's disabled-state predicate: true for any
// calendar day strictly before today in the given location.
func DisablePast(day, today time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := today.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// FormatUTC renders an instant as the backend's ISO 8601 UTC form,
// e.g. "2025-06-13T05:35:00Z"
func FormatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z07:00")
}

// FormatOrderID ensures the order id carries its "#" prefix
func FormatOrderID(orderID string) string {
	if strings.HasPrefix(orderID, "#") {
		return orderID
	}
	return "#" + orderID
}

// StripOrderID removes any leading "#" run from an order id
func StripOrderID(orderID string) string {
	return strings.TrimLeft(orderID, "#")
}

// Gate enforces at most one in-flight schedule or delete per order. It
// mirrors the disabled submit button: no queueing, a concurrent attempt is
// simply rejected.
type Gate struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGate creates an empty gate
func NewGate() *Gate {
	return &Gate{inflight: make(map[string]struct{})}
}

// Begin marks an order's submission as in flight. It returns false when a
// submission for the same order is already running.
func (g *Gate) Begin(orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[orderID]; busy {
		return false
	}
	g.inflight[orderID] = struct{}{}
	return true
}

// End clears the in-flight mark for an order
func (g *Gate) End(orderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, orderID)
}
