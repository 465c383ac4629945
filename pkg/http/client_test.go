package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lesson.md":
			assert.Equal(t, "probabilitypit/1.0", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("# MODULE 1"))
		case "/data":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"q":"` + r.URL.Query().Get("q") + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient()
	ctx := context.Background()

	var raw []byte
	require.NoError(t, c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: srv.URL + "/lesson.md"}, &raw))
	assert.Equal(t, "# MODULE 1", string(raw))

	var out struct {
		ID int    `json:"id"`
		Q  string `json:"q"`
	}
	require.NoError(t, c.SendAndParse(ctx, &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL + "/data",
		QueryParams: map[string][]string{"q": {"kelly"}},
	}, &out))
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "kelly", out.Q)

	err := c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: srv.URL + "/missing"}, &raw)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}
