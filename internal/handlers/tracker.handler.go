package handlers

import (
	"bufio"
	"errors"
	"strings"

	"healthtracker/internal/app"
	"healthtracker/internal/handlers/middleware"
	"healthtracker/internal/metrics"
	"healthtracker/internal/services"

	trackerController "healthtracker/internal/controllers/tracker"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type TrackerHandler struct {
	Handler
	trackerController trackerController.TrackerControllerInterface
}

func NewTrackerHandler(app app.App, router fiber.Router) *TrackerHandler {
	log := logger.New("handlers").File("tracker_handler")
	return &TrackerHandler{
		trackerController: app.Controllers.Tracker,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TrackerHandler) Register() {
	tracker := h.router.Group("/tracker", h.middleware.RequireAuth())

	tracker.Post("/symptoms", h.logSymptom)
	tracker.Get("/symptoms", h.listSymptoms)
	tracker.Post("/meals", h.logMeal)
	tracker.Get("/meals", h.listMeals)
	tracker.Post("/medications", h.logMedication)
	tracker.Get("/medications", h.listMedications)
	tracker.Post("/moods", h.logMood)
	tracker.Get("/moods", h.listMoods)
	tracker.Get("/analysis", h.getAnalysis)
	tracker.Get("/export-pdf", h.exportPDF)
}

func (h *TrackerHandler) logSymptom(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req trackerController.LogSymptomRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	symptom, err := h.trackerController.LogSymptom(c.UserContext(), user, &req)
	if err != nil {
		return h.failure(c, "Failed to log symptom", err)
	}

	return c.Status(fiber.StatusCreated).JSON(symptom)
}

func (h *TrackerHandler) listSymptoms(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	symptoms, err := h.trackerController.ListSymptoms(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to fetch symptoms", err)
	}

	return c.JSON(symptoms)
}

func (h *TrackerHandler) logMeal(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req trackerController.LogMealRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	meal, err := h.trackerController.LogMeal(c.UserContext(), user, &req)
	if err != nil {
		return h.failure(c, "Failed to log meal", err)
	}

	return c.Status(fiber.StatusCreated).JSON(meal)
}

func (h *TrackerHandler) listMeals(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	meals, err := h.trackerController.ListMeals(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to fetch meals", err)
	}

	return c.JSON(meals)
}

func (h *TrackerHandler) logMedication(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req trackerController.LogMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	medication, err := h.trackerController.LogMedication(c.UserContext(), user, &req)
	if err != nil {
		return h.failure(c, "Failed to log medication", err)
	}

	return c.Status(fiber.StatusCreated).JSON(medication)
}

func (h *TrackerHandler) listMedications(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	medications, err := h.trackerController.ListMedications(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to fetch medications", err)
	}

	return c.JSON(medications)
}

func (h *TrackerHandler) logMood(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req trackerController.LogMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	mood, err := h.trackerController.LogMood(c.UserContext(), user, &req)
	if err != nil {
		return h.failure(c, "Failed to log mood", err)
	}

	return c.Status(fiber.StatusCreated).JSON(mood)
}

func (h *TrackerHandler) listMoods(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	moods, err := h.trackerController.ListMoods(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to fetch moods", err)
	}

	return c.JSON(moods)
}

func (h *TrackerHandler) getAnalysis(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	summary, err := h.trackerController.GetAnalysis(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to analyze tracker data", err)
	}

	return c.JSON(summary)
}

// exportPDF builds the whole report before any byte is sent, so failures
// still get a clean 500. Once streaming starts the status is committed.
func (h *TrackerHandler) exportPDF(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("exportPDF")

	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	report, err := h.trackerController.BuildReport(c.UserContext(), user)
	if err != nil {
		return h.failure(c, "Failed to generate PDF report", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+services.ReportFilename+`"`)

	userID := user.ID
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if err := report.Write(w); err != nil {
			metrics.ReportFailed("stream")
			log.Er("failed to stream report", err, "userID", userID)
			return
		}
		if err := w.Flush(); err != nil {
			metrics.ReportFailed("stream")
			log.Er("failed to flush report", err, "userID", userID)
		}
	})

	return nil
}

func (h *TrackerHandler) failure(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, trackerController.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.TrimPrefix(err.Error(), trackerController.ErrValidation.Error()+": "),
		})
	}

	h.log.TraceFromContext(c.UserContext()).Function("failure").Er(message, err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}
