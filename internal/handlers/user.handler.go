package handlers

import (
	"mantis/internal/app"
	userController "mantis/internal/controllers/users"
	"mantis/internal/handlers/middleware"
	"mantis/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	Handler
	controller userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		controller: app.Controllers.User,
		Handler: Handler{
			log:        logger.New("handlers").Function("user"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/user", h.middleware.RequireAuth())

	users.Get("/me", h.getCurrentUser)

	admin := h.middleware.RequireRoles(models.RoleAdmin)
	users.Get("/", admin, h.list)
	users.Get("/email/:email", admin, h.getByEmail)
	users.Get("/:id", admin, h.get)
	users.Post("/", admin, h.create)
	users.Put("/:id", admin, h.update)
	users.Delete("/:id", admin, h.delete)
}

// getCurrentUser returns the profile of the authenticated user.
func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	if role := c.Query("role"); role != "" {
		users, err := h.controller.ListByRole(c.UserContext(), models.Role(role))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}

	users, err := h.controller.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	user, err := h.controller.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) getByEmail(c *fiber.Ctx) error {
	user, err := h.controller.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var request userController.CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.controller.Create(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": user})
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	var request userController.UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.controller.Update(c.UserContext(), id, &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	if err := h.controller.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
