package handlers

import (
	"strconv"

	"mantis/internal/app"
	questionController "mantis/internal/controllers/questions"
	"mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type QuestionHandler struct {
	Handler
	controller questionController.QuestionControllerInterface
}

func NewQuestionHandler(app app.App, router fiber.Router) *QuestionHandler {
	return &QuestionHandler{
		controller: app.Controllers.Question,
		Handler: Handler{
			log:        logger.New("handlers").Function("question"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *QuestionHandler) Register() {
	questions := h.router.Group("/checklistTemplate", h.middleware.RequireAuth())

	questions.Get("/", h.list)
	questions.Get("/:id", h.get)

	admin := h.middleware.RequireRoles(models.RoleAdmin)
	questions.Post("/", admin, h.create)
	questions.Put("/:id", admin, h.update)
	questions.Delete("/:id", admin, h.delete)
}

func (h *QuestionHandler) list(c *fiber.Ctx) error {
	if commonType := c.Query("machineCommonType"); commonType != "" {
		questions, err := h.controller.ListActiveByCommonType(c.UserContext(), commonType)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": questions})
	}

	questions, err := h.controller.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": questions})
}

func (h *QuestionHandler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be numeric"})
	}

	question, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": question})
}

func (h *QuestionHandler) create(c *fiber.Ctx) error {
	var request questionController.QuestionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	question, err := h.controller.Create(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": question})
}

func (h *QuestionHandler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be numeric"})
	}

	var request questionController.QuestionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	question, err := h.controller.Update(c.UserContext(), id, &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": question})
}

func (h *QuestionHandler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be numeric"})
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
