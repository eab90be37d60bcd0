package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/pkg/config"
)

type recorded struct {
	method, path, contentType string
	body                      []byte
}

func fakeS3(t *testing.T, status int) (*httptest.Server, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, r.Header.Get("Content-Type"), body})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestS3Archiver_Archive(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	a, err := NewS3Archiver(context.Background(), config.StorageConfig{
		Endpoint: srv.URL, Region: "eu-south-1", Bucket: "fatture",
		AccessKey: "test", SecretKey: "test", UsePathStyle: true,
	})
	require.NoError(t, err)

	url, err := a.Archive(context.Background(), "fatture/2026/00743110157/abc.xml", []byte("<FatturaElettronica/>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://fatture/fatture/2026/00743110157/abc.xml", url)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/fatture/fatture/2026/00743110157/abc.xml", reqs[0].path)
	assert.Equal(t, "application/xml", reqs[0].contentType)
}

func TestS3Archiver_Errors(t *testing.T) {
	_, err := NewS3Archiver(context.Background(), config.StorageConfig{})
	assert.Error(t, err)

	srv, _ := fakeS3(t, http.StatusForbidden)
	a, err := NewS3Archiver(context.Background(), config.StorageConfig{
		Endpoint: srv.URL, Bucket: "fatture", AccessKey: "test", SecretKey: "test", UsePathStyle: true,
	})
	require.NoError(t, err)
	_, err = a.Archive(context.Background(), "k.xml", []byte("x"))
	assert.Error(t, err)
}
