package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProbabilityPit/internal/domain/repository"
)

func TestFSContentSource_Fetch(t *testing.T) {
	src := NewFSContentSourceFS(fstest.MapFS{
		"module-01-casino-vs-exchange.md": {Data: []byte("# MODULE 1")},
	})
	ctx := context.Background()

	b, err := src.Fetch(ctx, "module-01-casino-vs-exchange.md")
	require.NoError(t, err)
	assert.Equal(t, "# MODULE 1", string(b))
	assert.Equal(t, "fs", src.Name())

	_, err = src.Fetch(ctx, "module-09.md")
	assert.ErrorIs(t, err, repository.ErrContentNotFound)

	_, err = src.Fetch(ctx, "../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrContentNotFound)
}

func TestFSContentSource_CanceledContext(t *testing.T) {
	src := NewFSContentSourceFS(fstest.MapFS{"a.md": {Data: []byte("x")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, "a.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSContentSource_RepoLessons(t *testing.T) {
	src := NewFSContentSource("../../content/curriculum/modules")
	for _, f := range []string{
		"module-01-casino-vs-exchange.md",
		"module-02-inch-wide-mile-deep.md",
		"module-03-the-toolkit.md",
		"module-04-execution-and-risk.md",
	} {
		b, err := src.Fetch(context.Background(), f)
		require.NoError(t, err, f)
		assert.Contains(t, string(b), "# MODULE", f)
	}
}

func TestHTTPContentSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/modules/module-02-inch-wide-mile-deep.md":
			_, _ = w.Write([]byte("# MODULE 2"))
		case "/modules/broken.md":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPContentSource(srv.URL+"/modules/", time.Second)
	ctx := context.Background()

	b, err := src.Fetch(ctx, "module-02-inch-wide-mile-deep.md")
	require.NoError(t, err)
	assert.Equal(t, "# MODULE 2", string(b))

	_, err = src.Fetch(ctx, "missing.md")
	assert.ErrorIs(t, err, repository.ErrContentNotFound)

	_, err = src.Fetch(ctx, "broken.md")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrContentNotFound)
}

func TestHTTPContentSource_NoBaseURL(t *testing.T) {
	_, err := NewHTTPContentSource("", 0).Fetch(context.Background(), "a.md")
	assert.Error(t, err)
}
