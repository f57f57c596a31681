package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

func TestRenderIdle(t *testing.T) {
	view := Render(Snapshot{Phase: PhaseIdle})

	assert.Empty(t, view.Rows)
	assert.Equal(t, "No messages to display. Click Search to load data.", view.EmptyHint)
	assert.Nil(t, view.Overlay)
	assert.Equal(t, "Search", view.SearchLabel)
	assert.False(t, view.SearchDisabled)
	assert.Empty(t, view.DateNote)
}

func TestRenderLoadingHidesHint(t *testing.T) {
	view := Render(Snapshot{Phase: PhaseSearching, Loading: true})

	assert.Equal(t, "Loading...", view.SearchLabel)
	assert.True(t, view.SearchDisabled)
	assert.Empty(t, view.EmptyHint)
}

func TestRenderRowsMatchResponse(t *testing.T) {
	msgs := sampleMessages()
	selected := int64(43)
	view := Render(Snapshot{Phase: PhaseClassifying, Results: msgs, SelectedMessageID: &selected})

	require.Len(t, view.Rows, len(msgs))
	for i, msg := range msgs {
		row := view.Rows[i]
		assert.Equal(t, msg.MessageID, row.MessageID)
		assert.Equal(t, msg.PhysicianID, row.PhysicianID)
		assert.Equal(t, msg.PhysicianName, row.PhysicianName)
		assert.Equal(t, msg.Specialty, row.Specialty)
		assert.Equal(t, msg.State, row.State)
		assert.Equal(t, FormatTimestamp(msg.Timestamp), row.Date)
		assert.Equal(t, msg.Topic, row.Topic)
		assert.Equal(t, msg.Sentiment, row.Sentiment)
		assert.Equal(t, msg.MessageText, row.MessageText)
		assert.Equal(t, msg.MessageID == selected, row.Selected)
	}
	assert.Empty(t, view.EmptyHint)
}

func TestRenderDateNote(t *testing.T) {
	view := Render(Snapshot{Bounds: &models.DateBounds{Min: "2024-01-01", Max: "2024-06-30"}})

	assert.Equal(t, "Date range limited to available data (2024-01-01 to 2024-06-30)", view.DateNote)
	require.NotNil(t, view.DateBounds)
	assert.Equal(t, "2024-01-01", view.DateBounds.Min)
}

func TestRenderClassificationNoIssuesSuppressesExtras(t *testing.T) {
	tests := []struct {
		name  string
		rules []models.MatchedRule
	}{
		{name: "empty rules", rules: []models.MatchedRule{}},
		{name: "absent rules", rules: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			overlay := RenderClassification(&models.ClassificationResult{
				MessageID:      7,
				MessageText:    "Thanks for the update.",
				MatchedRules:   tc.rules,
				ActionRequired: strPtr("Escalate"),
				ModifiedText:   strPtr("Rewritten"),
			})

			require.NotNil(t, overlay)
			assert.True(t, overlay.NoIssues)
			assert.Equal(t, "No compliance issues found", overlay.Affirmation)
			assert.Empty(t, overlay.Rules)
			assert.Empty(t, overlay.Action)
			assert.Empty(t, overlay.Suggested)
			assert.Equal(t, "Thanks for the update.", overlay.MessageText)
		})
	}
}

func TestRenderClassificationWithRules(t *testing.T) {
	overlay := RenderClassification(&models.ClassificationResult{
		MessageID:    42,
		MessageText:  "original",
		MatchedRules: []models.MatchedRule{{RuleID: "R1", RuleName: "Off-label claim"}, {RuleID: "R7", RuleName: "Missing safety info"}},
		ModifiedText: strPtr("suggested"),
	})

	require.NotNil(t, overlay)
	assert.False(t, overlay.NoIssues)
	assert.Empty(t, overlay.Affirmation)
	assert.Len(t, overlay.Rules, 2)
	assert.Empty(t, overlay.Action)
	assert.Equal(t, "suggested", overlay.Suggested)
	assert.Equal(t, "original", overlay.MessageText)

	assert.Nil(t, RenderClassification(nil))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "3/15/2024", FormatTimestamp("2024-03-15T10:30:00"))
	assert.Equal(t, "3/15/2024", FormatTimestamp("2024-03-15"))
	assert.Equal(t, "not a date", FormatTimestamp("not a date"))

	instant := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, instant.In(time.Local).Format(DisplayDateLayout), FormatTimestamp(instant.Format(time.RFC3339)))
}
