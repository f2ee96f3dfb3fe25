// Package http is the Fiber transport of the scheduling API: the remote
// collaborator the platform's admin, teacher and student screens call.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp builds the Fiber application and mounts all routes.
func NewApp(h *Handler, jwtSecret string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "lessonhub scheduler",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})

	api := app.Group("/api/v1", JWTMiddleware(jwtSecret))

	slots := api.Group("/slots")
	slots.Post("/preview", h.Preview)
	slots.Get("/stats", h.Stats)
	slots.Get("/availability", RequireRole(RoleTeacher), h.Availability)
	slots.Get("/week-image", h.WeekImage)
	slots.Post("/cancel-pending", RequireRole(RoleTeacher), h.CancelAllPending)
	slots.Get("/", h.ListSlots)
	slots.Post("/", RequireRole(RoleAdmin), h.CreateSlot)
	slots.Post("/bulk", RequireRole(RoleAdmin), h.BulkCreate)
	slots.Delete("/batch/:batchId", RequireRole(RoleAdmin), h.DeleteBatch)
	slots.Get("/:id", h.GetSlot)
	slots.Patch("/:id", RequireRole(RoleAdmin), h.UpdateSlot)
	slots.Delete("/:id", RequireRole(RoleAdmin), h.DeleteSlot)
	slots.Post("/:id/request", RequireRole(RoleTeacher), h.RequestSlot)
	slots.Post("/:id/approve", RequireRole(RoleAdmin), h.ApproveSlot)
	slots.Post("/:id/reject", RequireRole(RoleAdmin), h.RejectSlot)
	slots.Post("/:id/cancel", RequireRole(RoleTeacher), h.CancelSlot)
	slots.Post("/:id/reopen", RequireRole(RoleAdmin), h.ReopenSlot)

	config := api.Group("/schedule-config", RequireRole(RoleAdmin))
	config.Get("/", h.GetScheduleConfig)
	config.Put("/", h.PutScheduleConfig)
	config.Post("/generate", h.GenerateTermSlots)

	courses := api.Group("/courses/:courseId")
	courses.Get("/units", h.ListUnits)
	courses.Post("/units", RequireRole(RoleTeacher), h.CreateUnit)
	courses.Put("/units/order", RequireRole(RoleTeacher), h.ReorderUnits)
	courses.Get("/lectures/unassigned", h.ListUnassignedLectures)

	units := api.Group("/units")
	units.Patch("/:id", RequireRole(RoleTeacher), h.UpdateUnit)
	units.Delete("/:id", RequireRole(RoleTeacher), h.DeleteUnit)
	units.Get("/:unitId/lectures", h.ListLectures)
	units.Put("/:unitId/lectures/order", RequireRole(RoleTeacher), h.ReorderLectures)

	lectures := api.Group("/lectures", RequireRole(RoleTeacher))
	lectures.Post("/", h.CreateLecture)
	lectures.Patch("/:id", h.UpdateLecture)
	lectures.Delete("/:id", h.DeleteLecture)
	lectures.Post("/:id/move", h.MoveLecture)

	return app
}
