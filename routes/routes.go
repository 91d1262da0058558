package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/handlers"
	"github.com/Sumanth789856/Get-Updated/middlewares"
	"github.com/Sumanth789856/Get-Updated/registry"
	"github.com/Sumanth789856/Get-Updated/sessions"
)

// Deps is everything the route table wires into handlers.
type Deps struct {
	Accounts      *registry.Accounts
	Notes         *registry.Notes
	Announcements *registry.Announcements
	Revoked       sessions.RevocationStore
	JWTSecret     string
	TokenTTL      time.Duration
	Log           *zap.Logger
}

// Register wires all HTTP routes.
func Register(e *echo.Echo, d Deps) {
	auth := handlers.NewAuthHandler(d.Accounts, d.Revoked, d.JWTSecret, d.TokenTTL, d.Log)
	notes := handlers.NewNoteHandler(d.Notes, d.Log)
	anns := handlers.NewAnnouncementHandler(d.Announcements, d.Log)
	users := handlers.NewUserHandler(d.Accounts, d.Log)

	e.GET("/health", handlers.Health)

	// ===== Public auth =====
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(d.JWTSecret, d.Revoked)

	e.POST("/auth/logout", auth.Logout, authMW)

	// ===== Notes (any authenticated role) =====
	n := e.Group("/notes", authMW)
	n.GET("", notes.List)
	n.POST("", notes.Upload)
	n.GET("/search", notes.Search)
	n.GET("/:id/download", notes.Download)
	// edit and delete allow the owner or staff; the registry's policy
	// consult enforces that, not the router
	n.PUT("/:id", notes.Edit)
	n.DELETE("/:id", notes.Delete)

	// ===== Announcements (any authenticated role) =====
	a := e.Group("/announcements", authMW)
	a.GET("", anns.List)
	a.GET("/feed.ics", anns.Feed)
	a.POST("", anns.Create)
	a.DELETE("/:id", anns.Delete)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))
	admin.GET("/users", users.List)
	admin.GET("/users/export", users.Export)
	admin.POST("/users/students", users.AddStudent)
	admin.POST("/users/teachers", users.AddTeacher)
	admin.DELETE("/users/:id", users.Delete)
}
