package http

import (
	"github.com/measured-tracker/measured-backend/internal/pagination"
	"github.com/measured-tracker/measured-backend/internal/sessions/domain"
	"github.com/measured-tracker/measured-backend/internal/sessions/repository"
)

// Handler bundles the dependencies for session HTTP endpoints.
type Handler struct {
	repo *repository.SessionRepository
}

func New(repo *repository.SessionRepository) *Handler {
	return &Handler{repo: repo}
}

type createSessionRequest struct {
	ProjectID int64             `json:"project_id" binding:"required"`
	StartTime domain.Timestamp  `json:"start_time" binding:"required"`
	EndTime   *domain.Timestamp `json:"end_time"`
}

// updateSessionRequest replaces both times; sending end_time as null (or
// omitting it) reopens the session.
type updateSessionRequest struct {
	StartTime domain.Timestamp  `json:"start_time" binding:"required"`
	EndTime   *domain.Timestamp `json:"end_time"`
}

type listSessionsQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func defaultListQuery() listSessionsQuery {
	return listSessionsQuery{Page: 1, PageSize: pagination.DefaultPageSize}
}

type listSessionsResponse struct {
	Items    []domain.Session `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
