package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/dto"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
	"github.com/noah-isme/engagement-dashboard/pkg/response"
)

// APIHandler exposes the dashboard state machine as JSON.
type APIHandler struct {
	service dashboardService
}

// NewAPIHandler constructs the handler.
func NewAPIHandler(service dashboardService) *APIHandler {
	return &APIHandler{service: service}
}

// View godoc
// @Summary Current dashboard view
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /view [get]
func (h *APIHandler) View(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.View(sess, true))
}

// Options godoc
// @Summary Filter option sets
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /options [get]
func (h *APIHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Options())
}

// UpdateFilters godoc
// @Summary Replace the session filters
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body dto.FilterRequest true "Filters"
// @Success 200 {object} response.Envelope
// @Router /filters [put]
func (h *APIHandler) UpdateFilters(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.ApplyFilters(sess, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.View(sess, false))
}

// Search godoc
// @Summary Run a message search with the session filters
// @Description An optional body replaces the filters before searching.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body dto.FilterRequest false "Filters"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /search [post]
func (h *APIHandler) Search(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	// ContentLength is -1 for chunked bodies; an empty stream decodes to io.EOF.
	if c.Request.ContentLength != 0 {
		var req dto.FilterRequest
		switch err := c.ShouldBindJSON(&req); {
		case errors.Is(err, io.EOF):
		case err != nil:
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		default:
			if err := h.service.ApplyFilters(sess, req); err != nil {
				response.Error(c, err)
				return
			}
		}
	}
	outcome, err := h.service.Search(c.Request.Context(), sess)
	if err != nil {
		// The error response is the alert for API clients.
		sess.ConsumeAlert()
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.View(sess, false), map[string]interface{}{
		"query":   outcome.Query,
		"count":   len(outcome.Messages),
		"applied": outcome.Applied,
	})
}

// Classify godoc
// @Summary Run a compliance check on one message
// @Tags Dashboard
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classify/{id} [post]
func (h *APIHandler) Classify(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := messageIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	outcome, err := h.service.Classify(c.Request.Context(), sess, id)
	if err != nil {
		sess.ConsumeAlert()
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.View(sess, false), map[string]interface{}{
		"message_id": outcome.MessageID,
		"applied":    outcome.Applied,
	})
}

// Clear godoc
// @Summary Reset filters, results and classification
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /clear [post]
func (h *APIHandler) Clear(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.service.Clear(sess)
	response.JSON(c, http.StatusOK, h.service.View(sess, false))
}
