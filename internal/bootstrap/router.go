package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/measured-tracker/measured-backend/internal/api/http"
	"github.com/measured-tracker/measured-backend/internal/api/http/middleware"
	projhttp "github.com/measured-tracker/measured-backend/internal/projects/http"
	projrepo "github.com/measured-tracker/measured-backend/internal/projects/repository"
	sesshttp "github.com/measured-tracker/measured-backend/internal/sessions/http"
	sessrepo "github.com/measured-tracker/measured-backend/internal/sessions/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *sql.DB
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	api.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(api)

	projectRepo := projrepo.NewProjectRepository(dep.DB)
	projhttp.New(projectRepo).Register(api.Group("/projects"))

	sessionRepo := sessrepo.NewSessionRepository(dep.DB)
	sesshttp.New(sessionRepo).Register(api.Group("/sessions"))

	return r
}
