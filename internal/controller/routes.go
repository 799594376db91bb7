package controller

import (
	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/auth"
	"github.com/zordhalo/managment-site/internal/model"
)

// Routes registers every API route. Auth endpoints are rate limited per IP;
// everything else sits behind Authenticate, with role gates where a route is
// role-specific. Ownership checks stay in the services.
func (c *Controller) Routes(router *httprouter.Router, mw *auth.Middleware, rl *RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(mw.OptionalAuth(c.Register)))
	router.POST("/api/auth/login", rl.Limit(c.Login))

	router.GET("/api/rooms", mw.Authenticate(c.ListRooms))
	router.GET("/api/rooms/:id", mw.Authenticate(c.GetRoom))
	router.POST("/api/rooms", mw.Authenticate(mw.RequireRole(c.CreateRoom, model.RoleSupervisor)))
	router.PUT("/api/rooms/:id", mw.Authenticate(mw.RequireRole(c.UpdateRoom, model.RoleSupervisor)))
	router.DELETE("/api/rooms/:id", mw.Authenticate(mw.RequireRole(c.DeleteRoom, model.RoleSupervisor)))

	router.POST("/api/bookings", mw.Authenticate(mw.RequireRole(c.CreateBooking, model.RolePlayer)))
	router.GET("/api/bookings", mw.Authenticate(c.ListBookings))
	router.GET("/api/bookings/:id", mw.Authenticate(c.GetBooking))
	router.GET("/api/bookings/:id/qr", mw.Authenticate(c.BookingQR))
	router.PATCH("/api/bookings/:id/status", mw.Authenticate(c.UpdateBookingStatus))

	router.POST("/api/shifts", mw.Authenticate(mw.RequireRole(c.CreateShift, model.RoleSupervisor)))
	router.GET("/api/shifts", mw.Authenticate(mw.RequireRole(c.ListShifts, model.RoleEmployee, model.RoleSupervisor)))
	router.PUT("/api/shifts/:id", mw.Authenticate(mw.RequireRole(c.UpdateShift, model.RoleSupervisor)))
	router.DELETE("/api/shifts/:id", mw.Authenticate(mw.RequireRole(c.DeleteShift, model.RoleSupervisor)))
	router.GET("/api/shifts/:id/tasks", mw.Authenticate(c.ListShiftTasks))
	router.PATCH("/api/tasks/:id", mw.Authenticate(mw.RequireRole(c.ToggleTask, model.RoleEmployee)))

	router.GET("/api/task-templates", mw.Authenticate(mw.RequireRole(c.ListTemplates, model.RoleSupervisor)))
	router.POST("/api/task-templates", mw.Authenticate(mw.RequireRole(c.CreateTemplate, model.RoleSupervisor)))
	router.PUT("/api/task-templates/:id", mw.Authenticate(mw.RequireRole(c.UpdateTemplate, model.RoleSupervisor)))
	router.DELETE("/api/task-templates/:id", mw.Authenticate(mw.RequireRole(c.DeleteTemplate, model.RoleSupervisor)))

	router.GET("/api/notifications", mw.Authenticate(c.ListNotifications))
	router.PATCH("/api/notifications/:id/read", mw.Authenticate(c.MarkNotificationRead))
}
