package renderer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/release", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>本文</p></body></html>"))
	})
	mux.HandleFunc("/top.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	})
	mux.HandleFunc("/sniffed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pngHeader)
	})
	mux.HandleFunc("/not-image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchHTML(t *testing.T) {
	srv := newServer(t)
	f := NewFetcher(false, "", 5*time.Second)

	body, err := f.FetchHTML(context.Background(), srv.URL+"/release")
	require.NoError(t, err)
	assert.Contains(t, body, "本文")

	_, err = f.FetchHTML(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestFetchImage(t *testing.T) {
	srv := newServer(t)
	f := NewFetcher(false, "", 5*time.Second)

	testCases := []struct {
		path     string
		wantMIME string
		wantErr  bool
	}{
		{path: "/top.png", wantMIME: "image/png"},
		{path: "/sniffed", wantMIME: "image/png"},
		{path: "/not-image", wantErr: true},
		{path: "/missing", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			data, mimeType, err := f.FetchImage(context.Background(), srv.URL+tc.path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMIME, mimeType)
			assert.Equal(t, pngHeader, data)
		})
	}
}
