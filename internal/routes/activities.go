package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mergington/school-activities/internal/activities"
)

// RegisterActivityRoutes wires the authenticated enrollment endpoints.
// The activity list itself is public and registered separately.
func RegisterActivityRoutes(r fiber.Router, h *activities.Handler) {
	r.Post("/activities/:name/signup", h.Signup)
	r.Delete("/activities/:name/unregister", h.Unregister)
}
