package handler

import (
	"testing"

	"github.com/gofiber/fiber/v3"
)

// Creation lives at POST /create across the API, same as companies and jobs.
func TestLookupRoutes_CreatePath(t *testing.T) {
	app := fiber.New()
	NewLookupHandler(nil).RegisterRoutes(app.Group("/categories"))
	NewSalaryHandler(nil).RegisterRoutes(app.Group("/salaries"))
	NewCompanySizeHandler(nil).RegisterRoutes(app.Group("/company-sizes"))

	want := map[string]bool{
		"/categories/create":    false,
		"/salaries/create":      false,
		"/company-sizes/create": false,
	}
	for _, route := range app.GetRoutes() {
		if route.Method != fiber.MethodPost {
			continue
		}
		if _, ok := want[route.Path]; ok {
			want[route.Path] = true
		}
	}
	for path, found := range want {
		if !found {
			t.Errorf("missing POST %s", path)
		}
	}
}
