package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/engagement-dashboard/internal/models"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
	"github.com/noah-isme/engagement-dashboard/pkg/export"
)

type recordingPDF struct {
	report export.Report
}

func (r *recordingPDF) Render(report export.Report) ([]byte, error) {
	r.report = report
	return []byte("%PDF-fake"), nil
}

func TestExportServiceMessagesCSV(t *testing.T) {
	svc := NewExportService(export.NewCSVExporter(), export.NewPDFExporter())
	view := Render(Snapshot{Results: sampleMessages()})

	out, err := svc.MessagesCSV(view)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Physician ID,Physician,Specialty,State,Date,Topic,Sentiment,Message", string(lines[0]))
	assert.Contains(t, string(lines[1]), "42,1001,Dr. Ada Reyes,Cardiology,MA,3/15/2024,dosing,negative")
}

func TestExportServiceClassificationPDFFollowsOverlayRules(t *testing.T) {
	pdf := &recordingPDF{}
	svc := NewExportService(export.NewCSVExporter(), pdf)

	overlay := RenderClassification(&models.ClassificationResult{
		MessageID:      5,
		MessageText:    "ok",
		MatchedRules:   []models.MatchedRule{},
		ActionRequired: strPtr("ignored"),
	})
	out, err := svc.ClassificationPDF(overlay)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)

	require.Len(t, pdf.report.Sections, 2)
	assert.Equal(t, "Outcome", pdf.report.Sections[1].Heading)
	assert.Equal(t, "No compliance issues found", pdf.report.Sections[1].Paragraph)

	overlay = RenderClassification(&models.ClassificationResult{
		MessageID:      42,
		MessageText:    "claim",
		MatchedRules:   []models.MatchedRule{{RuleID: "R1", RuleName: "Off-label claim"}},
		ActionRequired: strPtr("Remove claim"),
	})
	_, err = svc.ClassificationPDF(overlay)
	require.NoError(t, err)
	require.Len(t, pdf.report.Sections, 3)
	require.NotNil(t, pdf.report.Sections[1].Table)
	assert.Equal(t, [][]string{{"R1", "Off-label claim"}}, pdf.report.Sections[1].Table.Rows)
	assert.Equal(t, "Remove claim", pdf.report.Sections[2].Paragraph)
}

func TestExportServiceClassificationPDFRendersRealDocument(t *testing.T) {
	svc := NewExportService(export.NewCSVExporter(), export.NewPDFExporter())

	out, err := svc.ClassificationPDF(RenderClassification(ruleResult(1, models.MatchedRule{RuleID: "R2", RuleName: "Pricing"})))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportServiceClassificationPDFWithoutResult(t *testing.T) {
	svc := NewExportService(export.NewCSVExporter(), export.NewPDFExporter())

	_, err := svc.ClassificationPDF(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestExportFilename(t *testing.T) {
	svc := NewExportService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	assert.Equal(t, "messages-20240501-093000.csv", svc.ExportFilename("messages", "csv"))
}
