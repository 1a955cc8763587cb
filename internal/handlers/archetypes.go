package handlers

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
)

type archetypeBucket struct {
	Archetype string   `json:"archetype"`
	Count     int      `json:"count"`
	Flagged   int      `json:"flagged"`
	Champions []string `json:"champions"`
}

// ArchetypeDistribution returns how the roster splits across archetypes.
func (h *Handler) ArchetypeDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := h.cached(ctx, "archetypes:distribution", func() (interface{}, error) {
		doc, err := h.assignments.Load(ctx)
		if err != nil {
			return nil, err
		}
		buckets := make(map[string]*archetypeBucket)
		for id, a := range doc.Assignments {
			b := buckets[a.PrimaryArchetype]
			if b == nil {
				b = &archetypeBucket{Archetype: a.PrimaryArchetype}
				buckets[a.PrimaryArchetype] = b
			}
			b.Count++
			if a.Flagged {
				b.Flagged++
			}
			b.Champions = append(b.Champions, id)
		}
		out := make([]*archetypeBucket, 0, len(buckets))
		for _, b := range buckets {
			sort.Strings(b.Champions)
			out = append(out, b)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Archetype < out[j].Archetype })
		return out, nil
	})
	if err != nil {
		h.logger.Errorw("archetype distribution failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load distribution")
		return
	}
	h.rawResponse(w, http.StatusOK, raw)
}

type archetypeMember struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// GetArchetype returns every champion whose primary is the named archetype,
// highest score first.
func (h *Handler) GetArchetype(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	raw, err := h.cached(ctx, "archetypes:members:"+name, func() (interface{}, error) {
		doc, err := h.assignments.Load(ctx)
		if err != nil {
			return nil, err
		}
		members := []archetypeMember{}
		for id, a := range doc.Assignments {
			if a.PrimaryArchetype == name {
				members = append(members, archetypeMember{ID: id, Score: a.PrimaryScore})
			}
		}
		sort.Slice(members, func(i, j int) bool {
			if members[i].Score != members[j].Score {
				return members[i].Score > members[j].Score
			}
			return members[i].ID < members[j].ID
		})
		return members, nil
	})
	if err != nil {
		h.logger.Errorw("get archetype failed", "archetype", name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load archetype")
		return
	}
	h.rawResponse(w, http.StatusOK, raw)
}
