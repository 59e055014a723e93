package main

import (
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/0x0FACED/go-dcel/pkg/config"
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv, err := newServer(config.Default())
	require.NoError(t, err)
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RejectsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	_, err := newServer(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Sites.Count = -1
	_, err = newServer(cfg)
	assert.Error(t, err)

	srv, err := newServer(config.Default())
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, srv.level)
}

func TestDiagramHandler(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Build log</h1>")
	assert.Contains(t, body, `value="12"`)
	assert.Contains(t, body, "echarts")
	assert.Contains(t, body, "cell closed")
	assert.NotContains(t, body, "failed verification")
}

func TestDiagramHandler_Post(t *testing.T) {
	form := url.Values{"sites": {"20"}, "seed": {"7"}, "random": {"true"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="20"`)
	assert.Contains(t, body, "checked")
	assert.NotContains(t, body, "build stopped")
}

func TestImageHandlers(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/svg?sites=9&width=300&height=200", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 9, strings.Count(rec.Body.String(), "<polygon"))

	rec = serve(t, httptest.NewRequest(http.MethodGet, "/png?random=true&sites=15&width=120&height=100", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestHandlers_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"sites not a number", "/?sites=many", http.StatusBadRequest},
		{"too many sites", "/svg?sites=100000", http.StatusBadRequest},
		{"bad seed", "/png?seed=x", http.StatusBadRequest},
		{"tiny image", "/png?width=2", http.StatusBadRequest},
		{"unknown path", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestBuild_SkipsSitesOutsideBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Bounds.Polygon = [][]float64{{-0.8, -0.8}, {0.8, -0.8}, {0, 0.8}}
	srv, err := newServer(cfg)
	require.NoError(t, err)

	log := logger.New(zapcore.DebugLevel)
	v, sites, err := srv.build(params{Sites: 9}, log)
	require.NoError(t, err)
	require.Len(t, sites, 9)
	assert.Len(t, v.Sites(), 5)
	require.NoError(t, v.Verify())

	log.UpdateLogs()
	assert.Contains(t, log.Raw(), "site skipped")
	assert.Contains(t, log.Raw(), "outside the bounds")
}
