// Package router assembles the gin engine and the route table.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "notes_backend/internal/feature/auth/transport/handler"
	notehandler "notes_backend/internal/feature/note/transport/handler"
	"notes_backend/internal/platform/http/handler"
	"notes_backend/internal/platform/http/middleware"
	jwtmw "notes_backend/internal/platform/jwt"
	"notes_backend/internal/platform/logging"
	"notes_backend/internal/shared/apperr"
)

// Deps are the handlers and settings the router needs.
type Deps struct {
	Auth         *authhandler.AuthHandler
	Notes        *notehandler.NoteHandler
	Verifier     jwtmw.TokenVerifier
	HealthChecks map[string]handler.Check
	CORSOrigins  []string
	Logger       *slog.Logger
}

var errRouteNotFound = apperr.New(apperr.NotFound, "Route not found")

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(logger))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(errRouteNotFound)
	})

	// No authentication required
	r.GET("/", handler.Root)
	health := handler.Health(d.HealthChecks)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", d.Auth.Signup)
		auth.POST("/signin", d.Auth.Login)
		auth.GET("/signout", d.Auth.Signout)
		auth.GET("/check", jwtmw.AuthRequired(d.Verifier), d.Auth.Check)
	}

	// Every note route requires a bearer token
	notes := r.Group("/api/note")
	notes.Use(jwtmw.AuthRequired(d.Verifier))
	{
		notes.POST("/add", d.Notes.AddNote)
		notes.PUT("/add", d.Notes.AddNote)
		notes.GET("/all", d.Notes.ListNotes)
		notes.PUT("/edit/:id", d.Notes.EditNote)
		notes.POST("/edit/:id", d.Notes.EditNote)
		notes.PUT("/update-note-pinned/:id", d.Notes.SetPinned)
		notes.GET("/search", d.Notes.SearchNotes)
		notes.DELETE("/delete/:id", d.Notes.DeleteNote)
	}

	return r
}

// corsConfig allows the browser client origins. Credentials stay off: tokens travel in the Authorization header.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
