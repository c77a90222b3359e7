package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/thcheetah777/engine/internal/table"
)

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	tables, err := h.tables.ListTables(ctx)
	if err != nil {
		h.renderTableError(w, r, "failed to list tables", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"count":  len(tables),
		"tables": tables,
	})
}

func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req table.CreateTableRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	created, err := h.tables.CreateTable(ctx, req)
	if err != nil {
		h.renderTableError(w, r, "failed to create table", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	t, err := h.tables.GetTable(ctx, tableID)
	if err != nil {
		h.renderTableError(w, r, "failed to get table", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, t)
}

func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.tables.DeleteTable(ctx, tableID); err != nil {
		h.renderTableError(w, r, "failed to delete table", err)
		return
	}

	render.NoContent(w, r)
}

func (h *Handler) RollTable(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	count, err := queryInt(r, "count", 1)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "count must be an integer", err)
		return
	}
	if count < 1 || count > h.maxRolls {
		h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", h.maxRolls), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.tables.Roll(ctx, tableID, count)
	if err != nil {
		log.Error("failed to roll table", "error", err, "table_id", tableID, "count", count)
		h.renderTableError(w, r, "failed to roll table", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

func (h *Handler) GetRolls(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	limit, err := queryInt(r, "limit", table.DefaultHistoryLimit)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "limit must be an integer", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rolls, err := h.tables.History(ctx, tableID, limit)
	if err != nil {
		h.renderTableError(w, r, "failed to get rolls", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"table_id": tableID,
		"rolls":    rolls,
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "tableId")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.tables.Stats(ctx, tableID)
	if err != nil {
		h.renderTableError(w, r, "failed to get stats", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
