package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)

	// Protected routes - require authentication
	auth.Post("/logout", protected, h.AuthHandler.Logout)
	auth.Get("/me", protected, h.AuthHandler.GetProfile)
	auth.Delete("/me", protected, h.AuthHandler.DeleteAccount)
}
