package handlers

import (
	"strconv"

	"mantis/internal/app"
	maintenanceController "mantis/internal/controllers/maintenance"
	"mantis/internal/handlers/middleware"
	"mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	Handler
	controller maintenanceController.MaintenanceControllerInterface
}

func NewMaintenanceHandler(app app.App, router fiber.Router) *MaintenanceHandler {
	return &MaintenanceHandler{
		controller: app.Controllers.Maintenance,
		Handler: Handler{
			log:        logger.New("handlers").Function("maintenance"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MaintenanceHandler) Register() {
	maintenance := h.router.Group("/maintenance", h.middleware.RequireAuth())

	maintenance.Post(
		"/",
		h.middleware.RequireRoles(models.RoleStudent, models.RoleAdmin),
		h.submit,
	)
	maintenance.Get("/", h.listByStatus)
	maintenance.Get("/month/:year/:month", h.listByMonth)
	maintenance.Get("/:id", h.getDetail)
	maintenance.Patch(
		"/:id/decision",
		h.middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		h.decide,
	)
}

func (h *MaintenanceHandler) submit(c *fiber.Ctx) error {
	var request maintenanceController.SubmitRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// The submitting student comes from the session, not the payload.
	if user := middleware.GetUser(c); user != nil && user.Role == models.RoleStudent {
		request.StudentID = user.ID
		request.StudentName = user.Name
	}

	record, err := h.controller.Submit(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

func (h *MaintenanceHandler) listByStatus(c *fiber.Ctx) error {
	status := models.DailyMaintenanceStatus(
		c.Query("status", string(models.DailyMaintenanceStatusPending)),
	)

	approverID := uuid.Nil
	if raw := c.Query("approverId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "approverId must be a valid UUID",
			})
		}
		approverID = parsed
	}

	records, err := h.controller.ListByStatus(c.UserContext(), status, approverID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": records})
}

func (h *MaintenanceHandler) listByMonth(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year must be numeric"})
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must be numeric"})
	}

	records, err := h.controller.ListByMonth(c.UserContext(), year, month)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": records})
}

func (h *MaintenanceHandler) getDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	record, err := h.controller.GetDetail(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": record})
}

func (h *MaintenanceHandler) decide(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	var request maintenanceController.DecideRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	record, err := h.controller.Decide(c.UserContext(), id, &request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": record})
}
