package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"proplens/app"
	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal"
	"proplens/ports"
)

// Exporter writes a dashboard snapshot as a downloadable artifact
type Exporter interface {
	Export(data portfolio.DashboardData) ([]byte, error)
}

// Server exposes the dashboard pipeline over HTTP. It keeps the latest
// normalized views in memory and recomputes them from the repository on
// demand; the pure pipeline below it holds no state of its own.
type Server struct {
	router  *gin.Engine
	service *app.DashboardService
	repo    ports.PropertyRepository
	hub     *SSEHub
	export  Exporter
	logger  *internal.Logger

	viewsMu sync.RWMutex
	views   []property.ChartProperty
}

// NewServer creates the API server. repo may be nil when running on
// pre-normalized demo data; export may be nil to disable downloads.
func NewServer(service *app.DashboardService, repo ports.PropertyRepository, export Exporter, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.Default(),
		service: service,
		repo:    repo,
		hub:     NewSSEHub(),
		export:  export,
		logger:  logger,
	}
	s.routes()
	return s
}

// SetViews replaces the in-memory view collection (demo mode, tests)
func (s *Server) SetViews(views []property.ChartProperty) {
	s.viewsMu.Lock()
	s.views = views
	s.viewsMu.Unlock()
}

// Views returns the current normalized view collection
func (s *Server) Views() []property.ChartProperty {
	return s.currentViews()
}

func (s *Server) currentViews() []property.ChartProperty {
	s.viewsMu.RLock()
	defer s.viewsMu.RUnlock()
	return s.views
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/dashboard/price-profile", s.handlePriceProfile)
	api.GET("/dashboard/export", s.handleExport)
	api.GET("/properties", s.handleListProperties)
	api.GET("/properties/:id", s.handleGetProperty)
	api.POST("/refresh", s.handleRefresh)
	api.GET("/events", s.hub.HandleSSE)
}

// handleDashboard filters the current views and returns KPIs, rankings and
// the filtered collection in one envelope
func (s *Server) handleDashboard(c *gin.Context) {
	filters := parseFilters(c)
	data := s.service.BuildDashboard(s.currentViews(), filters)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) handlePriceProfile(c *gin.Context) {
	filters := parseFilters(c)
	profile := s.service.PriceProfile(s.currentViews(), filters)
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

func (s *Server) handleExport(c *gin.Context) {
	if s.export == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "export not configured"})
		return
	}
	filters := parseFilters(c)
	data := s.service.BuildDashboard(s.currentViews(), filters)
	payload, err := s.export.Export(data)
	if err != nil {
		s.logger.Error("[api] export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

func (s *Server) handleListProperties(c *gin.Context) {
	views := s.currentViews()
	c.JSON(http.StatusOK, gin.H{"success": true, "properties": views, "total": len(views)})
}

func (s *Server) handleGetProperty(c *gin.Context) {
	id := c.Param("id")
	for _, v := range s.currentViews() {
		if v.ID.String() == id {
			c.JSON(http.StatusOK, gin.H{"success": true, "property": v})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
}

// handleRefresh reloads source records from the repository, renormalizes
// them with progress streamed over SSE, and swaps in the new views
func (s *Server) handleRefresh(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no repository configured"})
		return
	}
	records, err := s.repo.List(c.Request.Context())
	if err != nil {
		s.logger.Error("[api] refresh failed to list records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}

	views, err := s.service.NormalizeRecords(c.Request.Context(), records, func(done, total int, id string) {
		s.hub.Broadcast(PipelineEvent{
			EventType:  "normalize_progress",
			PropertyID: id,
			Done:       done,
			Total:      total,
			Progress:   float64(done) / float64(total),
		})
	})
	if err != nil {
		s.logger.Error("[api] refresh normalization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "normalization failed"})
		return
	}

	s.SetViews(views)
	s.hub.Broadcast(PipelineEvent{EventType: "dashboard_refreshed", Total: len(views), Progress: 1})
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views)})
}

// Refresh performs the repository reload outside an HTTP request (startup)
func (s *Server) Refresh(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	views, err := s.service.NormalizeRecords(ctx, records, nil)
	if err != nil {
		return err
	}
	s.SetViews(views)
	return nil
}

// parseFilters reads the filter criteria from query parameters. Absent
// parameters impose no constraint; unparseable numbers are ignored rather
// than rejected - a contradictory or nonsense filter just narrows to an
// empty result set.
func parseFilters(c *gin.Context) portfolio.Filters {
	f := portfolio.Filters{Region: c.Query("region")}
	f.MinPrice = queryFloat(c, "min_price")
	f.MaxPrice = queryFloat(c, "max_price")
	f.MinBedrooms = queryFloat(c, "min_bedrooms")
	f.MaxBedrooms = queryFloat(c, "max_bedrooms")
	if types := c.Query("property_types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.PropertyTypes = append(f.PropertyTypes, t)
			}
		}
	}
	return f
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
