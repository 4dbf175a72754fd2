package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/controllers/healthz"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
//
// The returned teardown function releases resources that are global to
// the process, currently the Prometheus collectors. It must be called
// before another Router can be constructed.
func Router() (*gin.Engine, func(), error) {
	if mode, ok := os.LookupEnv("GIN_MODE"); ok {
		gin.SetMode(mode)
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware())

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}
	r.Use(MetricsMiddleware())

	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r, "debug/pprof")
	}

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(r.Group("/healthz"))

	// API v1 setup
	group := r.Group("/v1")
	{
		group.GET("", GetV1)
		group.DELETE("", v1.Cleanup)
		group.OPTIONS("", OptionsV1)
	}

	v1.RegisterPeriodRoutes(group.Group("/periods"))
	v1.RegisterGrouperRoutes(group.Group("/groupers"))
	v1.RegisterCategoryRoutes(group.Group("/categories"))
	v1.RegisterEstudioRoutes(group.Group("/estudios"))
	v1.RegisterExpenseRoutes(group.Group("/expenses"))
	v1.RegisterBudgetRoutes(group.Group("/budgets"))
	v1.RegisterSimulationRoutes(group.Group("/simulations"))
	v1.RegisterSubgroupRoutes(group.Group("/subgroups"))
	v1.RegisterTemplateRoutes(group.Group("/templates"))
	v1.RegisterDashboardRoutes(group.Group("/dashboard"))
	v1.RegisterRateRoutes(group.Group("/rates"))
	v1.RegisterExportRoutes(group.Group("/export"), version)

	log.Info().Str("version", version).Msg("backend startup complete")

	teardown := func() {
		unregisterPrometheusMetrics()
	}

	return r, teardown, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Health check endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Periods     string `json:"periods" example:"https://example.com/api/v1/periods"`         // URL of period list endpoint
	Groupers    string `json:"groupers" example:"https://example.com/api/v1/groupers"`       // URL of grouper list endpoint
	Categories  string `json:"categories" example:"https://example.com/api/v1/categories"`   // URL of category list endpoint
	Estudios    string `json:"estudios" example:"https://example.com/api/v1/estudios"`       // URL of estudio list endpoint
	Expenses    string `json:"expenses" example:"https://example.com/api/v1/expenses"`       // URL of expense list endpoint
	Budgets     string `json:"budgets" example:"https://example.com/api/v1/budgets"`         // URL of budget list endpoint
	Simulations string `json:"simulations" example:"https://example.com/api/v1/simulations"` // URL of simulation list endpoint
	Subgroups   string `json:"subgroups" example:"https://example.com/api/v1/subgroups"`     // URL of subgroup endpoints
	Templates   string `json:"templates" example:"https://example.com/api/v1/templates"`     // URL of template list endpoint
	Dashboard   string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`     // URL of the dashboard endpoint
	Rates       string `json:"rates" example:"https://example.com/api/v1/rates"`             // URL of the rate calculator endpoint
	Export      string `json:"export" example:"https://example.com/api/v1/export"`           // URL of the export endpoint
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Periods:     url + "/v1/periods",
			Groupers:    url + "/v1/groupers",
			Categories:  url + "/v1/categories",
			Estudios:    url + "/v1/estudios",
			Expenses:    url + "/v1/expenses",
			Budgets:     url + "/v1/budgets",
			Simulations: url + "/v1/simulations",
			Subgroups:   url + "/v1/subgroups",
			Templates:   url + "/v1/templates",
			Dashboard:   url + "/v1/dashboard",
			Rates:       url + "/v1/rates",
			Export:      url + "/v1/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
