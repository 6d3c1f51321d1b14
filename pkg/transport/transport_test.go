package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTP_Do(t *testing.T) {
	var gotMethod, gotType, gotToken, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotToken = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Request-ID", "r-1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status_code":1000}`))
	}))
	defer srv.Close()

	resp, err := NewHTTP(nil).Do(context.Background(), &Request{
		Method: http.MethodPut,
		URL:    srv.URL + "/locations/NL/ABC/LOC1",
		Header: http.Header{"Authorization": {"Token abc"}},
		Body:   []byte(`{"id":"LOC1"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"status_code":1000}`, string(resp.Body))
	assert.Equal(t, "r-1", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "Token abc", gotToken)
	assert.Equal(t, `{"id":"LOC1"}`, gotBody)
}

func TestHTTP_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTP(nil).Do(context.Background(), &Request{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestHTTP_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTP(nil).Do(ctx, &Request{Method: http.MethodGet, URL: "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHTTP_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(w, strings.NewReader(strings.Repeat("x", MaxBodySize+10)))
	}))
	defer srv.Close()

	_, err := NewHTTP(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestRecorder(t *testing.T) {
	boom := errors.New("connection refused")
	rec := NewRecorder(
		Reply{Body: `{"status_code":1000}`},
		Reply{Err: boom},
		Reply{Status: http.StatusNotFound, Body: "gone"},
	)

	resp, err := rec.Do(context.Background(), &Request{Method: http.MethodGet, URL: "https://partner/a"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = rec.Do(context.Background(), &Request{Method: http.MethodGet, URL: "https://partner/b"})
	assert.ErrorIs(t, err, boom)

	for i := 0; i < 2; i++ {
		resp, err = rec.Do(context.Background(), &Request{Method: http.MethodGet, URL: "https://partner/c"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	assert.Equal(t, 4, rec.CallCount())
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "https://partner/c", last.URL)
	assert.Equal(t, "https://partner/a", rec.Calls()[0].URL)
}

func TestRecorder_HookSeesContext(t *testing.T) {
	rec := NewRecorder(Reply{Body: "{}"})
	rec.Hook = func(ctx context.Context, _ *Request) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := rec.Do(ctx, &Request{Method: http.MethodGet, URL: "https://partner"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, rec.CallCount())
}
