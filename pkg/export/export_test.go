package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Table{
		Headers: []string{"ID", "Message"},
		Rows: [][]string{
			{"1", "Dosing question, urgent"},
			{"2", "plain"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Message\n1,\"Dosing question, urgent\"\n2,plain\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{Headers: []string{"ID", "Message"}, Rows: [][]string{{"1"}}})
	assert.Error(t, err)

	_, err = NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(Report{
		Title:    "Compliance Check Results",
		Subtitle: "generated for review",
		Sections: []Section{
			{Heading: "Message", Fields: []Field{{Label: "Message ID", Value: "42"}}, Paragraph: "Try it for migraines."},
			{Heading: "Rules triggered", Table: &Table{Headers: []string{"Rule", "Name"}, Rows: [][]string{{"R1", "Off-label claim"}}}},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterRequiresTitle(t *testing.T) {
	_, err := NewPDFExporter().Render(Report{})
	assert.Error(t, err)
}
