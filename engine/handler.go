package engine

import (
	"encoding/json"
	"net/http"
	"time"
)

type snapshotResponse struct {
	State      string            `json:"state"`
	Host       string            `json:"host"`
	Base       string            `json:"base"`
	ResolvedAt time.Time         `json:"resolvedAt"`
	TTLSeconds int64             `json:"ttlSeconds"`
	LastError  string            `json:"lastError,omitempty"`
	Values     map[string]string `json:"values"`
}

type valueResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the current snapshot as JSON. GET / returns every key together with
// the cache state; GET /?key=name returns a single value or 404.
func (e *Engine) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			e.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})

			return
		}

		snapshot, err := e.Snapshot()
		if err != nil {
			e.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})

			return
		}

		if key := r.URL.Query().Get("key"); key != "" {
			value, ok := snapshot.Lookup(key)
			if !ok {
				e.writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrKeyNotFound.Error() + ": " + key})

				return
			}

			e.writeJSON(w, http.StatusOK, valueResponse{Key: key, Value: value})

			return
		}

		response := snapshotResponse{
			State:      e.State().String(),
			Host:       snapshot.Host(),
			Base:       snapshot.Base(),
			ResolvedAt: snapshot.ResolvedAt(),
			TTLSeconds: int64(e.TTL() / time.Second),
			Values:     snapshot.Values(),
		}

		if lastErr := e.LastError(); lastErr != nil {
			response.LastError = lastErr.Error()
		}

		e.writeJSON(w, http.StatusOK, response)
	})
}

func (e *Engine) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		e.logger.Error("failed to write response", "error", err)
	}
}
