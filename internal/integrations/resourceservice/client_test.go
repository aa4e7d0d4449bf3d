package resourceservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/resources/10", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"name":"Hall A","timezone":"Europe/Moscow","is_active":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nopLogger{})

	resource, err := c.GetResource(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resource.ID)
	assert.Equal(t, "Hall A", resource.Name)
	assert.Equal(t, "Europe/Moscow", resource.Timezone)
	assert.True(t, resource.IsActive)
}

func TestGetResource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := c.GetResource(context.Background(), 10)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestGetResource_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := c.GetResource(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetResource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := c.GetResource(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetResource_ConnectionFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, nopLogger{})

	_, err := c.GetResource(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetResource_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := c.GetResource(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
