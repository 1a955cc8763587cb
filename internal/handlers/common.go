package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// cached runs compute behind a redis read-through cache. A nil redis client
// or any cache error falls through to compute; caching is never load-bearing.
func (h *Handler) cached(ctx context.Context, key string, compute func() (interface{}, error)) (json.RawMessage, error) {
	if h.redis != nil {
		if raw, err := h.redis.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if h.redis != nil {
		if err := h.redis.Set(ctx, key, raw, h.cacheTTL).Err(); err != nil {
			h.logger.Warnw("cache write failed", "key", key, "error", err)
		}
	}
	return raw, nil
}

func (h *Handler) rawResponse(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(raw)
}
