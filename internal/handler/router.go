package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	internalmiddleware "github.com/noah-isme/engagement-dashboard/internal/middleware"
	"github.com/noah-isme/engagement-dashboard/internal/service"
	"github.com/noah-isme/engagement-dashboard/pkg/logger"
	corsmiddleware "github.com/noah-isme/engagement-dashboard/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/engagement-dashboard/pkg/middleware/requestid"
)

// Handlers groups every route handler of the dashboard.
type Handlers struct {
	Dashboard *DashboardHandler
	API       *APIHandler
	Export    *ExportHandler
	Metrics   *MetricsHandler
}

// RouterOptions controls the optional parts of the route table.
type RouterOptions struct {
	APIPrefix      string
	AllowedOrigins []string
	Docs           bool
	Metrics        *service.MetricsService
	Logger         *zap.Logger
}

// NewRouter builds the engine. CORS runs on the engine so preflight requests are answered
// even though no OPTIONS routes exist; session is the middleware that attaches the reviewer session.
func NewRouter(h Handlers, session gin.HandlerFunc, opts RouterOptions) (*gin.Engine, error) {
	templates, err := Templates()
	if err != nil {
		return nil, err
	}
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}
	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(opts.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if opts.Docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	page := r.Group("/", session)
	page.GET("", h.Dashboard.Page)
	page.POST("search", h.Dashboard.Search)
	page.POST("clear", h.Dashboard.Clear)
	page.POST("classify/:id", h.Dashboard.Classify)
	page.GET("export/messages.csv", h.Export.MessagesCSV)
	page.GET("export/classification.pdf", h.Export.ClassificationPDF)

	api := r.Group(prefix, session)
	api.GET("/view", h.API.View)
	api.GET("/options", h.API.Options)
	api.PUT("/filters", h.API.UpdateFilters)
	api.POST("/search", h.API.Search)
	api.POST("/classify/:id", h.API.Classify)
	api.POST("/clear", h.API.Clear)
	api.GET("/export/messages.csv", h.Export.MessagesCSV)
	api.GET("/export/classification.pdf", h.Export.ClassificationPDF)

	return r, nil
}
