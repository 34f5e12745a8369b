package urlresolver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hornwatch/internal/infra/urlresolver"
)

func TestIsAggregatorURL(t *testing.T) {
	assert.True(t, urlresolver.IsAggregatorURL("https://news.google.com/rss/articles/abc123"))
	assert.False(t, urlresolver.IsAggregatorURL("https://radiotamazuj.org/en/article/1"))
	assert.False(t, urlresolver.IsAggregatorURL("not a url"))
}

func TestResolve_AnchorScanStrategy(t *testing.T) {
	r := urlresolver.New(http.DefaultClient)

	anchorPayload := `<p>Read more: <a href="https://radiotamazuj.org/en/article/42">here</a></p>`
	got := r.Resolve(context.Background(), "https://news.google.com/rss/articles/opaque", anchorPayload)

	assert.Equal(t, "https://radiotamazuj.org/en/article/42", got)
}

func TestResolve_TrampolineMetaRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
<meta http-equiv="refresh" content="0;url=https://sudantribune.com/article/99">
</head><body></body></html>`))
	}))
	defer server.Close()

	r := urlresolver.New(server.Client())
	got := r.Resolve(context.Background(), server.URL, "")

	assert.Equal(t, "https://sudantribune.com/article/99", got)
}

func TestResolve_FallsBackToOriginalWhenAllStrategiesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>no links here</p></body></html>`))
	}))
	defer server.Close()

	r := urlresolver.New(server.Client())
	got := r.Resolve(context.Background(), server.URL, "")

	assert.Equal(t, server.URL, got)
}
