// Package page normalizes list responses into one paginated result type and
// derives the page strip shown under every list.
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedShape = errors.New("unexpected list response shape")

// Meta is the pagination block of a list envelope.
type Meta struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`

	// Paginated is false when the backend answered with a bare array.
	Paginated bool `json:"-"`
}

// Result is the canonical list page. Items never contains nil entries.
type Result[T any] struct {
	Items []*T
	Meta  Meta

	// Extra keeps the remaining envelope keys (resumen, chequera, ...).
	Extra map[string]json.RawMessage
}

func (r Result[T]) PageMeta() Meta { return r.Meta }

// Pageable is implemented by every list result the controller can hold.
type Pageable interface {
	PageMeta() Meta
}

// Decode accepts either a bare JSON array or a {data, meta, ...} envelope.
func Decode[T any](raw []byte) (*Result[T], error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return &Result[T]{Meta: singlePage(0)}, nil
	}

	switch raw[0] {
	case '[':
		var items []*T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}

		items = compact(items)

		return &Result[T]{Items: items, Meta: singlePage(len(items))}, nil

	case '{':
		return decodeEnvelope[T](raw)
	}

	return nil, fmt.Errorf("%w: starts with %q", ErrUnexpectedShape, raw[0])
}

func decodeEnvelope[T any](raw []byte) (*Result[T], error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	var items []*T

	if data, ok := env["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding envelope data: %w", err)
		}
	}

	delete(env, "data")

	items = compact(items)
	res := &Result[T]{Items: items, Meta: singlePage(len(items))}

	if rawMeta, ok := env["meta"]; ok && !bytes.Equal(bytes.TrimSpace(rawMeta), []byte("null")) {
		var meta Meta
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			return nil, fmt.Errorf("decoding envelope meta: %w", err)
		}

		meta.Paginated = true
		if meta.Page < 1 {
			meta.Page = 1
		}

		res.Meta = meta
	}

	delete(env, "meta")

	if len(env) > 0 {
		res.Extra = env
	}

	return res, nil
}

func singlePage(n int) Meta {
	return Meta{Page: 1, TotalPages: 1, Total: n}
}

func compact[T any](items []*T) []*T {
	out := items[:0]

	for _, it := range items {
		if it == nil {
			continue
		}

		out = append(out, it)
	}

	return out
}
