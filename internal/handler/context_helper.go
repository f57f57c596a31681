package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/engagement-dashboard/internal/middleware"
	"github.com/noah-isme/engagement-dashboard/internal/service"
	appErrors "github.com/noah-isme/engagement-dashboard/pkg/errors"
)

func sessionFromContext(c *gin.Context) (*service.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, appErrors.ErrNoSession
	}
	return sess, nil
}

func messageIDParam(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "message id must be a positive integer")
	}
	return id, nil
}
