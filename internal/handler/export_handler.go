package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/pkg/response"
)

// ExportHandler serves downloads of the session's current results.
type ExportHandler struct {
	service dashboardService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service dashboardService) *ExportHandler {
	return &ExportHandler{service: service}
}

// MessagesCSV godoc
// @Summary Download the current result set as CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/messages.csv [get]
func (h *ExportHandler) MessagesCSV(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, filename, err := h.service.ExportMessages(sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "text/csv; charset=utf-8", body)
}

// ClassificationPDF godoc
// @Summary Download the displayed classification as a PDF report
// @Tags Export
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/classification.pdf [get]
func (h *ExportHandler) ClassificationPDF(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, filename, err := h.service.ExportClassification(sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/pdf", body)
}
