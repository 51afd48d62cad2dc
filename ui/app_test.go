package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proplens/app"
	"proplens/domain/core"
	"proplens/domain/portfolio"
	"proplens/domain/property"
)

type stubSource struct {
	views []property.ChartProperty
}

func (s stubSource) Views() []property.ChartProperty { return s.views }

func fptr(v float64) *float64 { return &v }

func newTestApp() *App {
	service := app.NewDashboardService(portfolio.DefaultPriceBands(), 2, nil)
	source := stubSource{views: []property.ChartProperty{
		{
			ID:        core.PropertyID("a"),
			Address:   "100 Gulf Shore Blvd, Naples, FL",
			ListPrice: fptr(1_500_000),
		},
	}}
	return NewApp(service, source)
}

func TestHandleReportHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "Portfolio Summary", "</html>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q", want)
		}
	}
}

func TestHandleReportMarkdown(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report.md", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Portfolio Summary") {
		t.Fatal("expected raw markdown report")
	}
}

func TestHandleReportRegionFilter(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report.md?region=miami", nil))

	if !strings.Contains(rec.Body.String(), "0 of 1 properties match") {
		t.Fatalf("expected region filter to exclude the record, got:\n%s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
