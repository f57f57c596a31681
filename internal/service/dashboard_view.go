package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

// DisplayDateLayout is the localized short date used for message timestamps.
const DisplayDateLayout = "1/2/2006"

const (
	searchLabel      = "Search"
	searchLabelBusy  = "Loading..."
	emptyResultsHint = "No messages to display. Click Search to load data."
	noIssuesMessage  = "No compliance issues found"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Snapshot is the complete input of Render.
type Snapshot struct {
	Phase             Phase
	Criteria          models.FilterCriteria
	Bounds            *models.DateBounds
	Results           []models.Message
	Loading           bool
	SelectedMessageID *int64
	Classification    *models.ClassificationResult
	LastQuery         string
}

// View is what the dashboard shows for a snapshot.
type View struct {
	Phase          Phase                  `json:"phase"`
	Filters        models.FilterCriteria  `json:"filters"`
	DateBounds     *models.DateBounds     `json:"date_bounds,omitempty"`
	DateNote       string                 `json:"date_note,omitempty"`
	Loading        bool                   `json:"loading"`
	SearchLabel    string                 `json:"search_label"`
	SearchDisabled bool                   `json:"search_disabled"`
	Query          string                 `json:"query"`
	Rows           []ViewRow              `json:"rows"`
	EmptyHint      string                 `json:"empty_hint,omitempty"`
	Overlay        *ClassificationOverlay `json:"overlay,omitempty"`
	Alert          string                 `json:"alert,omitempty"`
}

// ViewRow is one rendered table row.
type ViewRow struct {
	MessageID     int64  `json:"message_id"`
	PhysicianID   int64  `json:"physician_id"`
	PhysicianName string `json:"physician_name"`
	Specialty     string `json:"specialty"`
	State         string `json:"state"`
	Date          string `json:"date"`
	Topic         string `json:"topic"`
	Sentiment     string `json:"sentiment"`
	MessageText   string `json:"message_text"`
	Selected      bool   `json:"selected"`
}

// ClassificationOverlay is the rendered compliance check result.
type ClassificationOverlay struct {
	MessageID   int64                `json:"message_id"`
	MessageText string               `json:"message_text"`
	NoIssues    bool                 `json:"no_issues"`
	Affirmation string               `json:"affirmation,omitempty"`
	Rules       []models.MatchedRule `json:"rules,omitempty"`
	Action      string               `json:"action_required,omitempty"`
	Suggested   string               `json:"suggested_text,omitempty"`
}

// Render derives the view from a snapshot. It has no side effects.
func Render(snap Snapshot) View {
	view := View{
		Phase:          snap.Phase,
		Filters:        snap.Criteria,
		Loading:        snap.Loading,
		SearchLabel:    searchLabel,
		SearchDisabled: snap.Loading,
		Query:          snap.LastQuery,
		Rows:           make([]ViewRow, 0, len(snap.Results)),
		Overlay:        RenderClassification(snap.Classification),
	}
	if snap.Loading {
		view.SearchLabel = searchLabelBusy
	}
	if snap.Bounds != nil {
		bounds := *snap.Bounds
		view.DateBounds = &bounds
		view.DateNote = fmt.Sprintf("Date range limited to available data (%s to %s)", bounds.Min, bounds.Max)
	}
	for _, msg := range snap.Results {
		view.Rows = append(view.Rows, ViewRow{
			MessageID:     msg.MessageID,
			PhysicianID:   msg.PhysicianID,
			PhysicianName: msg.PhysicianName,
			Specialty:     msg.Specialty,
			State:         msg.State,
			Date:          FormatTimestamp(msg.Timestamp),
			Topic:         msg.Topic,
			Sentiment:     msg.Sentiment,
			MessageText:   msg.MessageText,
			Selected:      snap.SelectedMessageID != nil && *snap.SelectedMessageID == msg.MessageID,
		})
	}
	if len(snap.Results) == 0 && !snap.Loading {
		view.EmptyHint = emptyResultsHint
	}
	return view
}

// RenderClassification applies the overlay rules: with no matched rules only the
// affirmation is shown, even when the payload carries an action or suggested text.
func RenderClassification(result *models.ClassificationResult) *ClassificationOverlay {
	if result == nil {
		return nil
	}
	overlay := &ClassificationOverlay{
		MessageID:   result.MessageID,
		MessageText: result.MessageText,
	}
	if !result.HasIssues() {
		overlay.NoIssues = true
		overlay.Affirmation = noIssuesMessage
		return overlay
	}
	overlay.Rules = append([]models.MatchedRule(nil), result.MatchedRules...)
	if result.ActionRequired != nil {
		overlay.Action = *result.ActionRequired
	}
	if result.ModifiedText != nil {
		overlay.Suggested = *result.ModifiedText
	}
	return overlay
}

// FormatTimestamp renders an ISO instant as a local short date. Unparseable input is returned as is.
func FormatTimestamp(raw string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.In(time.Local).Format(DisplayDateLayout)
		}
	}
	return raw
}
