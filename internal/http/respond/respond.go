// Package respond holds the encoding and query parsing helpers shared by the
// development API handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/page"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// List writes the paginated envelope {data, meta, ...extra}.
func List[T any](w http.ResponseWriter, res page.Result[T], extra map[string]any) {
	body := map[string]any{
		"data": res.Items,
		"meta": res.Meta,
	}

	for k, v := range extra {
		body[k] = v
	}

	JSON(w, http.StatusOK, body)
}

// Error writes status with the error text, hiding internals on 5xx.
func Error(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// ID parses the {id} route parameter.
func ID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}

	return id, nil
}

// Paging reads page and limit, defaulting to the first page.
func Paging(q url.Values) (p, limit int, err error) {
	p, limit = 1, 0

	if s := q.Get("page"); s != "" {
		if p, err = strconv.Atoi(s); err != nil || p < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", s)
		}
	}

	if s := q.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("invalid limit %q", s)
		}
	}

	return p, limit, nil
}

func Int64(q url.Values, key string) (*int64, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}

	return &v, nil
}

func Date(q url.Values, key string) (*civil.Date, error) {
	s := q.Get(key)
	if s == "" {
		return nil, nil
	}

	d, err := civil.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}

	return &d, nil
}

// CSV splits a comma-joined multi-value parameter, dropping blanks.
func CSV(q url.Values, key string) []string {
	var out []string

	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
