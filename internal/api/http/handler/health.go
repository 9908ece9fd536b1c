package handler

import "github.com/gofiber/fiber/v3"

// GET /health
func Health(c fiber.Ctx) error {
	return ok(c, fiber.Map{
		"status":  "OK",
		"message": "Server is running",
	})
}
