package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/api"
)

func TestClient_InjectsHeadersAndQuery(t *testing.T) {
	var got *http.Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := api.New(ts.URL+"/api/v1/", "17", time.Second)
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}

	err = c.Get(context.Background(), "/cheques", url.Values{"page": {"2"}, "q": {"banco"}}, &out)
	require.NoError(t, err)

	assert.True(t, out.OK)
	require.NotNil(t, got)
	assert.Equal(t, "/api/v1/cheques", got.URL.Path)
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, "banco", got.URL.Query().Get("q"))
	assert.Equal(t, "17", got.Header.Get(api.HeaderUserID))
	assert.NotEmpty(t, got.Header.Get(api.HeaderRequestID))
}

func TestClient_PatchSendsJSON(t *testing.T) {
	var body map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := api.New(ts.URL, "", time.Second)
	require.NoError(t, err)

	err = c.Patch(context.Background(), "/cheques/3/anular", map[string]string{"motivo": "extraviado"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "extraviado", body["motivo"])
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{name: "NotFound", status: http.StatusNotFound, target: api.ErrNotFound},
		{name: "Conflict", status: http.StatusConflict, target: api.ErrConflict},
		{name: "BadRequest", status: http.StatusBadRequest, target: api.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tt.status)
			}))
			defer ts.Close()

			c, err := api.New(ts.URL, "", time.Second)
			require.NoError(t, err)

			err = c.Delete(context.Background(), "/cheques/1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var se *api.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Code)
			assert.Contains(t, se.Error(), "boom")
		})
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := api.New("/api/v1", "", time.Second)
	assert.Error(t, err)
}
