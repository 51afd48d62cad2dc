package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"proplens/app"
	"proplens/domain/portfolio"
	"proplens/domain/property"
	"proplens/internal/report"
)

// ViewSource supplies the current normalized property collection. The API
// server implements it; tests can stub it with a fixed slice.
type ViewSource interface {
	Views() []property.ChartProperty
}

// App serves the read-only portfolio report UI. It renders the markdown
// report built over the live view collection; all interactive work goes
// through the JSON API.
type App struct {
	router  *chi.Mux
	service *app.DashboardService
	source  ViewSource
	builder *report.Builder
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the report UI application
func NewApp(service *app.DashboardService, source ViewSource) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		source:  source,
		builder: report.NewBuilder(),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleReport)
	a.router.Get("/report.md", a.handleReportMarkdown)
	a.router.Get("/health", a.handleHealth)
}

// handleReport renders the portfolio report as an HTML page
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	body := a.builder.HTML(a.buildReport(r))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, pageHeader)
	w.Write(body)
	fmt.Fprint(w, pageFooter)
}

// handleReportMarkdown serves the raw markdown for download or piping
func (a *App) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, a.buildReport(r))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func (a *App) buildReport(r *http.Request) string {
	views := a.source.Views()
	filters := filtersFromQuery(r)
	data := a.service.BuildDashboard(views, filters)
	profile := a.service.PriceProfile(views, filters)
	return a.builder.Markdown(data, profile)
}

func filtersFromQuery(r *http.Request) portfolio.Filters {
	q := r.URL.Query()
	return portfolio.Filters{Region: q.Get("region")}
}

// Router returns the chi router for mounting or testing
func (a *App) Router() *chi.Mux {
	return a.router
}

// Start runs the UI server
func (a *App) Start(config Config) error {
	addr := ":" + config.Port
	return http.ListenAndServe(addr, a.router)
}

const pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Portfolio Report</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
h1, h2 { border-bottom: 1px solid #eee; padding-bottom: 4px; }
</style>
</head>
<body>
`

const pageFooter = `
</body>
</html>
`
