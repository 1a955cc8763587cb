package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/riftlab/archetype-api/internal/models"
)

type championSummary struct {
	ID               string  `json:"id"`
	PrimaryArchetype string  `json:"primary_archetype,omitempty"`
	PrimaryScore     float64 `json:"primary_score,omitempty"`
}

// ListChampions returns every champion with its primary archetype.
func (h *Handler) ListChampions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := h.cached(ctx, "champions:list", func() (interface{}, error) {
		doc, err := h.assignments.Load(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]championSummary, 0, len(h.attrs.Champions))
		for id := range h.attrs.Champions {
			s := championSummary{ID: id}
			if a := doc.Assignments[id]; a != nil {
				s.PrimaryArchetype = a.PrimaryArchetype
				s.PrimaryScore = a.PrimaryScore
			}
			out = append(out, s)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	})
	if err != nil {
		h.logger.Errorw("list champions failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list champions")
		return
	}
	h.rawResponse(w, http.StatusOK, raw)
}

type championDetail struct {
	ID         string                                `json:"id"`
	Attributes *models.DerivedAttributes             `json:"attributes"`
	Abilities  map[models.SlotKey]*models.Ability    `json:"abilities,omitempty"`
	Assignment *models.Assignment                    `json:"assignment,omitempty"`
}

// GetChampion returns one champion's attributes, merged abilities and
// archetype assignment.
func (h *Handler) GetChampion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	attrs := h.attrs.Champions[id]
	if attrs == nil {
		h.errorResponse(w, http.StatusNotFound, "Unknown champion")
		return
	}

	raw, err := h.cached(ctx, "champions:detail:"+id, func() (interface{}, error) {
		detail := championDetail{ID: id, Attributes: attrs}
		if h.spells != nil {
			detail.Abilities = h.spells.Spells[id]
		}
		doc, err := h.assignments.Load(ctx)
		if err != nil {
			return nil, err
		}
		detail.Assignment = doc.Assignments[id]
		return detail, nil
	})
	if err != nil {
		h.logger.Errorw("get champion failed", "champion", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load champion")
		return
	}
	h.rawResponse(w, http.StatusOK, raw)
}
