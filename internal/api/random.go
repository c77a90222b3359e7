package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/thcheetah777/engine/internal/ranges"
)

type SelectRequest struct {
	Intervals [][]float64 `json:"intervals"`
	Sample    *float64    `json:"sample"`
}

type SelectResponse struct {
	Index  int     `json:"index"`
	Found  bool    `json:"found"`
	Sample float64 `json:"sample"`
}

func (h *Handler) RandomBetween(w http.ResponseWriter, r *http.Request) {
	min, max, err := parseBounds(r, strconv.ParseFloat)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"min":   min,
		"max":   max,
		"value": h.rand.Between(min, max),
	})
}

func (h *Handler) RandomRound(w http.ResponseWriter, r *http.Request) {
	min, max, err := parseBounds(r, func(s string, _ int) (float64, error) {
		v, err := strconv.Atoi(s)
		return float64(v), err
	})
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"min":   int(min),
		"max":   int(max),
		"value": h.rand.RoundBetween(int(min), int(max)),
	})
}

func (h *Handler) RandomPercentage(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"value": h.rand.Percentage(),
	})
}

func (h *Handler) RandomBool(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"value": h.rand.Bool(),
	})
}

// SelectRange looks up a sample in caller-supplied intervals. When no sample
// is sent one is drawn from [0, 100).
func (h *Handler) SelectRange(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	intervals := make([]ranges.Interval, len(req.Intervals))
	for i, pair := range req.Intervals {
		if len(pair) != 2 {
			h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("interval %d must be [low, high]", i), nil)
			return
		}
		intervals[i] = ranges.Interval{Low: pair[0], High: pair[1]}
	}

	if err := ranges.Validate(intervals); err != nil {
		h.renderError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	var sample float64
	if req.Sample != nil {
		sample = *req.Sample
	} else {
		sample = h.rand.Between(0, ranges.PercentMax)
	}

	idx, found := ranges.SelectIndex(intervals, sample)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SelectResponse{Index: idx, Found: found, Sample: sample})
}

func parseBounds(r *http.Request, parse func(string, int) (float64, error)) (float64, float64, error) {
	query := r.URL.Query()

	min, err := parse(query.Get("min"), 64)
	if err != nil {
		return 0, 0, errors.New("min must be a number")
	}
	max, err := parse(query.Get("max"), 64)
	if err != nil {
		return 0, 0, errors.New("max must be a number")
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, 0, errors.New("bounds must be finite")
	}
	if min > max {
		return 0, 0, errors.New("min must not exceed max")
	}
	return min, max, nil
}
