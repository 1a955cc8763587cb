package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

type relationshipQuery struct {
	MinGames uint64 `validate:"gte=1,lte=1000000"`
}

// RelationshipWinRates returns archetype-pair win rates aggregated from
// match history, folded through the current assignments.
func (h *Handler) RelationshipWinRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := relationshipQuery{MinGames: h.minGames}
	if raw := r.URL.Query().Get("min_games"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "min_games must be a positive integer")
			return
		}
		q.MinGames = v
	}
	if err := h.validator.Struct(q); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "min_games out of range")
		return
	}

	key := fmt.Sprintf("relationships:%d", q.MinGames)
	raw, err := h.cached(ctx, key, func() (interface{}, error) {
		doc, err := h.assignments.Load(ctx)
		if err != nil {
			return nil, err
		}
		return h.relationships.ArchetypePairWinRates(ctx, doc, q.MinGames)
	})
	if err != nil {
		h.logger.Errorw("relationship aggregation failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to aggregate relationships")
		return
	}
	h.rawResponse(w, http.StatusOK, raw)
}
