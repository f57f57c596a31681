package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/dto"
	"github.com/noah-isme/engagement-dashboard/internal/models"
	"github.com/noah-isme/engagement-dashboard/internal/service"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
)

type dashboardService interface {
	Options() models.FilterOptions
	ApplyFilters(sess *service.Session, req dto.FilterRequest) error
	View(sess *service.Session, consumeAlert bool) service.View
	Search(ctx context.Context, sess *service.Session) (service.SearchOutcome, error)
	Classify(ctx context.Context, sess *service.Session, messageID int64) (service.ClassifyOutcome, error)
	Clear(sess *service.Session)
	ExportMessages(sess *service.Session) ([]byte, string, error)
	ExportClassification(sess *service.Session) ([]byte, string, error)
}

type pageData struct {
	View    service.View
	Options models.FilterOptions
}

// DashboardHandler serves the server-rendered dashboard page and its form actions.
// Actions redirect back to the page; failures surface as the session alert.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Page renders the dashboard.
func (h *DashboardHandler) Page(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	h.render(c, http.StatusOK, h.service.View(sess, true))
}

// Search applies the submitted filters and runs the search.
func (h *DashboardHandler) Search(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	var req dto.FilterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderError(c, sess, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter form"))
		return
	}
	if err := h.service.ApplyFilters(sess, req); err != nil {
		h.renderError(c, sess, err)
		return
	}
	// Failures are recorded as the session alert and shown after the redirect.
	_, _ = h.service.Search(c.Request.Context(), sess)
	c.Redirect(http.StatusSeeOther, "/")
}

// Classify runs a compliance check for the row's message.
func (h *DashboardHandler) Classify(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	id, err := messageIDParam(c)
	if err != nil {
		h.renderError(c, sess, err)
		return
	}
	_, _ = h.service.Classify(c.Request.Context(), sess, id)
	c.Redirect(http.StatusSeeOther, "/#classification")
}

// Clear resets filters, results and classification.
func (h *DashboardHandler) Clear(c *gin.Context) {
	sess, err := sessionFromContext(c)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	h.service.Clear(sess)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *DashboardHandler) renderError(c *gin.Context, sess *service.Session, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(appErr)
	view := h.service.View(sess, true)
	view.Alert = appErr.Message
	h.render(c, appErr.Status, view)
}

func (h *DashboardHandler) render(c *gin.Context, status int, view service.View) {
	c.Header("Cache-Control", "no-store")
	c.HTML(status, DashboardTemplate, pageData{View: view, Options: h.service.Options()})
}
