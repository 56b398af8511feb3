package activities

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mergington/school-activities/internal/middleware"
)

// Handler exposes activity HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds an activities HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type activityResponse struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type enrollmentRequest struct {
	Email string `json:"email"`
}

// List returns the activity catalogue sorted by name.
func (h *Handler) List(c *fiber.Ctx) error {
	listed, err := h.svc.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "list activities failed")
	}
	result := make([]activityResponse, 0, len(listed))
	for _, activity := range listed {
		result = append(result, activityResponse{
			Name:            activity.Name,
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			Participants:    activity.Participants,
		})
	}
	return c.Status(http.StatusOK).JSON(result)
}

// Signup enrolls the authenticated student in the named activity.
func (h *Handler) Signup(c *fiber.Ctx) error {
	activityName, email, authedEmail, err := h.enrollmentParams(c)
	if err != nil {
		return err
	}
	if err := h.svc.Signup(c.UserContext(), activityName, email, authedEmail); err != nil {
		return enrollmentError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

// Unregister withdraws the authenticated student from the named activity.
func (h *Handler) Unregister(c *fiber.Ctx) error {
	activityName, email, authedEmail, err := h.enrollmentParams(c)
	if err != nil {
		return err
	}
	if err := h.svc.Unregister(c.UserContext(), activityName, email, authedEmail); err != nil {
		return enrollmentError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

func (h *Handler) enrollmentParams(c *fiber.Ctx) (activityName, email, authedEmail string, err error) {
	activityName, err = url.PathUnescape(c.Params("name"))
	if err != nil || activityName == "" {
		return "", "", "", fiber.NewError(http.StatusBadRequest, "invalid activity name")
	}
	var req enrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", "", fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return "", "", "", fiber.NewError(http.StatusBadRequest, "email is required")
	}
	authedEmail, _ = c.Locals(middleware.UserEmailKey).(string)
	if authedEmail == "" {
		return "", "", "", fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	return activityName, req.Email, authedEmail, nil
}

func enrollmentError(err error) error {
	switch {
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(http.StatusForbidden, ErrForbidden.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrAlreadyEnrolled):
		return fiber.NewError(http.StatusConflict, ErrAlreadyEnrolled.Error())
	case errors.Is(err, ErrNotEnrolled):
		return fiber.NewError(http.StatusConflict, ErrNotEnrolled.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "enrollment operation failed")
	}
}
