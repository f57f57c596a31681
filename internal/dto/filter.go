package dto

import (
	"strings"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

// FilterRequest is the filter form / JSON payload. Enumerated fields are checked against
// the option sets by the validations registered in service.NewDashboardService.
type FilterRequest struct {
	PhysicianID string `json:"physician_id" form:"physician_id" validate:"omitempty,max=64"`
	StartDate   string `json:"start_date" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Topic       string `json:"topic" form:"topic" validate:"omitempty,filter_topic"`
	Sentiment   string `json:"sentiment" form:"sentiment" validate:"omitempty,filter_sentiment"`
	MessageText string `json:"message_text" form:"message_text" validate:"omitempty,max=500"`
	Specialty   string `json:"specialty" form:"specialty" validate:"omitempty,filter_specialty"`
	State       string `json:"state" form:"state" validate:"omitempty,filter_state"`
}

// Criteria converts the request into filter criteria.
func (r FilterRequest) Criteria() models.FilterCriteria {
	return models.FilterCriteria{
		PhysicianID: r.PhysicianID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Topic:       r.Topic,
		Sentiment:   r.Sentiment,
		MessageText: r.MessageText,
		Specialty:   r.Specialty,
		State:       r.State,
	}
}

// Normalize trims dates and enumerated values. Free-text fields are sent as typed
// unless they are blank.
func (r FilterRequest) Normalize() FilterRequest {
	return FilterRequest{
		PhysicianID: blankToEmpty(r.PhysicianID),
		StartDate:   strings.TrimSpace(r.StartDate),
		EndDate:     strings.TrimSpace(r.EndDate),
		Topic:       strings.TrimSpace(r.Topic),
		Sentiment:   strings.TrimSpace(r.Sentiment),
		MessageText: blankToEmpty(r.MessageText),
		Specialty:   strings.TrimSpace(r.Specialty),
		State:       strings.TrimSpace(r.State),
	}
}

func blankToEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
