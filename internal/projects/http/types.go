package http

import "github.com/measured-tracker/measured-backend/internal/projects/repository"

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	repo *repository.ProjectRepository
}

func New(repo *repository.ProjectRepository) *Handler {
	return &Handler{repo: repo}
}
