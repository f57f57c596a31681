package service

import (
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

const isoDateLayout = "2006-01-02"

// FilterState holds the current value of every filter dimension and the server-advertised date bounds.
// Setters accept raw input; enumeration values are constrained by whoever presents the options.
type FilterState struct {
	mu       sync.Locker
	criteria models.FilterCriteria
	bounds   *models.DateBounds
}

// NewFilterState returns an empty, standalone filter state.
func NewFilterState() *FilterState {
	return newFilterState(&sync.Mutex{})
}

func newFilterState(mu sync.Locker) *FilterState {
	return &FilterState{mu: mu}
}

func (f *FilterState) SetPhysicianID(v string) {
	f.update(func(c *models.FilterCriteria) { c.PhysicianID = normalizeInput(v) })
}

func (f *FilterState) SetStartDate(v string) {
	f.update(func(c *models.FilterCriteria) { c.StartDate = normalizeInput(v) })
}

func (f *FilterState) SetEndDate(v string) {
	f.update(func(c *models.FilterCriteria) { c.EndDate = normalizeInput(v) })
}

func (f *FilterState) SetTopic(v string) {
	f.update(func(c *models.FilterCriteria) { c.Topic = normalizeInput(v) })
}

func (f *FilterState) SetSentiment(v string) {
	f.update(func(c *models.FilterCriteria) { c.Sentiment = normalizeInput(v) })
}

func (f *FilterState) SetMessageText(v string) {
	f.update(func(c *models.FilterCriteria) { c.MessageText = normalizeInput(v) })
}

func (f *FilterState) SetSpecialty(v string) {
	f.update(func(c *models.FilterCriteria) { c.Specialty = normalizeInput(v) })
}

func (f *FilterState) SetState(v string) {
	f.update(func(c *models.FilterCriteria) { c.State = normalizeInput(v) })
}

// Apply replaces every dimension at once, as a submitted filter form does.
func (f *FilterState) Apply(criteria models.FilterCriteria) {
	f.update(func(c *models.FilterCriteria) {
		*c = models.FilterCriteria{
			PhysicianID: normalizeInput(criteria.PhysicianID),
			StartDate:   normalizeInput(criteria.StartDate),
			EndDate:     normalizeInput(criteria.EndDate),
			Topic:       normalizeInput(criteria.Topic),
			Sentiment:   normalizeInput(criteria.Sentiment),
			MessageText: normalizeInput(criteria.MessageText),
			Specialty:   normalizeInput(criteria.Specialty),
			State:       normalizeInput(criteria.State),
		}
	})
}

// Criteria returns a snapshot of the current values.
func (f *FilterState) Criteria() models.FilterCriteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.criteria
}

// Reset unsets every dimension. Date bounds survive; they are fetched once per session.
func (f *FilterState) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *FilterState) reset() {
	f.criteria = models.FilterCriteria{}
}

// SetDateBounds records the selectable window. Only the first non-nil value is kept.
func (f *FilterState) SetDateBounds(bounds *models.DateBounds) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setDateBounds(bounds)
}

func (f *FilterState) setDateBounds(bounds *models.DateBounds) bool {
	if bounds == nil || f.bounds != nil {
		return false
	}
	copied := *bounds
	f.bounds = &copied
	return true
}

// DateBounds returns the selectable window, or nil when it is unknown.
func (f *FilterState) DateBounds() *models.DateBounds {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dateBounds()
}

func (f *FilterState) dateBounds() *models.DateBounds {
	if f.bounds == nil {
		return nil
	}
	copied := *f.bounds
	return &copied
}

// ClampDate limits an ISO date to the known bounds, inclusive. Without bounds, or for
// values that do not parse, the input is returned unchanged.
func (f *FilterState) ClampDate(date string) string {
	return ClampDate(f.DateBounds(), date)
}

// ClampDate is the bounds-only form of FilterState.ClampDate.
func ClampDate(bounds *models.DateBounds, date string) string {
	if bounds == nil || date == "" {
		return date
	}
	d, err := time.Parse(isoDateLayout, date)
	if err != nil {
		return date
	}
	if min, err := time.Parse(isoDateLayout, bounds.Min); err == nil && d.Before(min) {
		return bounds.Min
	}
	if max, err := time.Parse(isoDateLayout, bounds.Max); err == nil && d.After(max) {
		return bounds.Max
	}
	return date
}

func (f *FilterState) update(apply func(*models.FilterCriteria)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.criteria)
}

// normalizeInput treats whitespace-only input as unset and otherwise keeps the raw value.
func normalizeInput(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
