package handlers

import (
	"mantis/internal/app"
	machineController "mantis/internal/controllers/machines"
	"mantis/internal/handlers/middleware"
	"mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type MachineHandler struct {
	Handler
	controller machineController.MachineControllerInterface
}

func NewMachineHandler(app app.App, router fiber.Router) *MachineHandler {
	return &MachineHandler{
		controller: app.Controllers.Machine,
		Handler: Handler{
			log:        logger.New("handlers").Function("machine"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MachineHandler) Register() {
	machines := h.router.Group("/machine", h.middleware.RequireAuth())

	machines.Get("/", h.list)
	machines.Get("/:id", h.get)
	machines.Get("/:id/statusLogs", h.getStatusLogs)

	admin := h.middleware.RequireRoles(models.RoleAdmin)
	machines.Post("/", admin, h.create)
	machines.Put("/:id", admin, h.update)
	machines.Delete("/:id", admin, h.delete)
	machines.Patch(
		"/:id/status",
		h.middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin),
		h.changeStatus,
	)
}

func (h *MachineHandler) list(c *fiber.Ctx) error {
	if commonType := c.Query("machineCommonType"); commonType != "" {
		machines, err := h.controller.ListByCommonType(c.UserContext(), commonType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": machines})
	}

	machines, err := h.controller.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": machines})
}

func (h *MachineHandler) get(c *fiber.Ctx) error {
	machine, err := h.controller.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": machine})
}

func (h *MachineHandler) getStatusLogs(c *fiber.Ctx) error {
	logs, err := h.controller.GetStatusLogs(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": logs})
}

func (h *MachineHandler) create(c *fiber.Ctx) error {
	var request machineController.MachineRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	machine, err := h.controller.Create(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": machine})
}

func (h *MachineHandler) update(c *fiber.Ctx) error {
	var request machineController.MachineRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	request.ID = c.Params("id")

	machine, err := h.controller.Update(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": machine})
}

func (h *MachineHandler) delete(c *fiber.Ctx) error {
	if err := h.controller.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MachineHandler) changeStatus(c *fiber.Ctx) error {
	var request machineController.ChangeStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	machine, err := h.controller.ChangeStatus(c.UserContext(), c.Params("id"), user.ID, &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": machine})
}
