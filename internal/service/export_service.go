package service

import (
	"fmt"
	"strconv"
	"time"

	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
	"github.com/noah-isme/engagement-dashboard/pkg/export"
)

var messageExportHeaders = []string{"ID", "Physician ID", "Physician", "Specialty", "State", "Date", "Topic", "Sentiment", "Message"}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(report export.Report) ([]byte, error)
}

// ExportService renders the current result set and classification into downloadable files.
type ExportService struct {
	csv csvRenderer
	pdf pdfRenderer
	now func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(csv csvRenderer, pdf pdfRenderer) *ExportService {
	return &ExportService{csv: csv, pdf: pdf, now: time.Now}
}

// MessagesCSV renders rows exactly as the dashboard table shows them.
func (s *ExportService) MessagesCSV(view View) ([]byte, error) {
	if s.csv == nil {
		return nil, appErrors.ErrInternal
	}
	table := export.Table{Headers: messageExportHeaders, Rows: make([][]string, 0, len(view.Rows))}
	for _, row := range view.Rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(row.MessageID, 10),
			strconv.FormatInt(row.PhysicianID, 10),
			row.PhysicianName,
			row.Specialty,
			row.State,
			row.Date,
			row.Topic,
			row.Sentiment,
			row.MessageText,
		})
	}
	out, err := s.csv.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render messages export")
	}
	return out, nil
}

// ClassificationPDF renders the overlay as a compliance report. It follows the overlay
// rules, so a result without matched rules prints only the affirmation.
func (s *ExportService) ClassificationPDF(overlay *ClassificationOverlay) ([]byte, error) {
	if overlay == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no classification result to export")
	}
	if s.pdf == nil {
		return nil, appErrors.ErrInternal
	}
	report := export.Report{
		Title:    "Compliance Check Results",
		Subtitle: "Generated " + s.now().Format(time.RFC1123),
		Sections: []export.Section{{
			Heading:   "Message",
			Fields:    []export.Field{{Label: "Message ID", Value: strconv.FormatInt(overlay.MessageID, 10)}},
			Paragraph: overlay.MessageText,
		}},
	}
	if overlay.NoIssues {
		report.Sections = append(report.Sections, export.Section{Heading: "Outcome", Paragraph: overlay.Affirmation})
	} else {
		rules := export.Table{Headers: []string{"Rule", "Name"}}
		for _, rule := range overlay.Rules {
			rules.Rows = append(rules.Rows, []string{rule.RuleID, rule.RuleName})
		}
		report.Sections = append(report.Sections, export.Section{Heading: fmt.Sprintf("Rules triggered (%d)", len(overlay.Rules)), Table: &rules})
		if overlay.Action != "" {
			report.Sections = append(report.Sections, export.Section{Heading: "Action", Paragraph: overlay.Action})
		}
		if overlay.Suggested != "" {
			report.Sections = append(report.Sections, export.Section{Heading: "Suggested text", Paragraph: overlay.Suggested})
		}
	}
	out, err := s.pdf.Render(report)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render classification report")
	}
	return out, nil
}

// ExportFilename builds a timestamped download name.
func (s *ExportService) ExportFilename(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, s.now().UTC().Format("20060102-150405"), ext)
}
