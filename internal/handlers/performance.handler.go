package handlers

import (
	"strconv"

	"mantis/internal/app"
	performanceController "mantis/internal/controllers/performance"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type PerformanceHandler struct {
	Handler
	controller performanceController.PerformanceControllerInterface
}

func NewPerformanceHandler(app app.App, router fiber.Router) *PerformanceHandler {
	return &PerformanceHandler{
		controller: app.Controllers.Performance,
		Handler: Handler{
			log:        logger.New("handlers").Function("performance"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PerformanceHandler) Register() {
	performance := h.router.Group("/performance", h.middleware.RequireAuth())

	performance.Get("/summary", h.summary)
	performance.Get("/machine", h.machine)
	performance.Get("/section/range", h.sectionRange)
	performance.Get("/unit/range", h.unitRange)
	performance.Get("/section", h.sectionYear)
	performance.Get("/unit", h.unitYear)
	performance.Get("/recap/:machineId/:year", h.yearlyRecap)
}

func (h *PerformanceHandler) summary(c *fiber.Ctx) error {
	rows, err := h.controller.GetPerformanceSummary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) machine(c *fiber.Ctx) error {
	rows, err := h.controller.GetMachinePerformance(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) sectionRange(c *fiber.Ctx) error {
	rows, err := h.controller.GetSectionPerformanceRange(
		c.UserContext(), c.Query("from"), c.Query("to"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) unitRange(c *fiber.Ctx) error {
	rows, err := h.controller.GetUnitPerformanceRange(
		c.UserContext(), c.Query("from"), c.Query("to"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) sectionYear(c *fiber.Ctx) error {
	rows, err := h.controller.GetSectionPerformance(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) unitYear(c *fiber.Ctx) error {
	rows, err := h.controller.GetUnitPerformance(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *PerformanceHandler) yearlyRecap(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year must be numeric"})
	}

	recap, err := h.controller.GetYearlyRecap(c.UserContext(), c.Params("machineId"), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": recap})
}
