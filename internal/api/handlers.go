package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/render"

	"github.com/thcheetah777/engine/internal/rng"
	"github.com/thcheetah777/engine/internal/table"
)

const requestTimeout = 10 * time.Second

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Handler struct {
	tables   *table.Manager
	rand     *rng.Rand
	maxRolls int
}

func NewHandler(tables *table.Manager, maxRolls int) *Handler {
	if maxRolls < 1 {
		maxRolls = 1
	}
	return &Handler{
		tables:   tables,
		rand:     tables.Rand(),
		maxRolls: maxRolls,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "engine-rolls",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// renderTableError maps manager errors onto HTTP statuses.
func (h *Handler) renderTableError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, table.ErrNotFound):
		h.renderError(w, r, http.StatusNotFound, "table not found", err)
	case errors.Is(err, table.ErrDuplicate):
		h.renderError(w, r, http.StatusConflict, "table name already exists", err)
	case errors.Is(err, table.ErrInvalid):
		h.renderError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	default:
		h.renderError(w, r, http.StatusInternalServerError, message, err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
