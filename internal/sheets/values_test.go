package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	raw, err := ParseValues([]byte(`{"values":[["BS","Surface"],["BS-01",12.5],["BS-02",null],[]]}`))
	require.NoError(t, err)
	require.Len(t, raw, 4)
	assert.Equal(t, []string{"BS-01", "12.5"}, raw[1])
	assert.Equal(t, []string{"BS-02", ""}, raw[2])
	assert.Empty(t, raw[3])
}

func TestParseValues_EmptyRange(t *testing.T) {
	raw, err := ParseValues([]byte(`{"range":"Data!A1:K","majorDimension":"ROWS"}`))
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestParseValues_Invalid(t *testing.T) {
	_, err := ParseValues([]byte(`{"values": [`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestClient_Values(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Data!A1:K3","values":[["BS","Date"],["BS-01","15/05/2025"]]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL+"/"))
	raw, err := c.Values(context.Background(), "sheet-123", "Data!A1:K")
	require.NoError(t, err)

	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Data!A1:K", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, raw, 2)
	assert.Equal(t, "BS-01", raw[1][0])
}

func TestClient_ValuesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	_, err := c.Values(context.Background(), "sheet-123", "Data!A1:K")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "The caller does not have permission")
}

func TestClient_ValuesContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient("secret", WithBaseURL(srv.URL))
	_, err := c.Values(ctx, "sheet-123", "Data!A1:K")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_EmptySpreadsheetID(t *testing.T) {
	c := NewClient("secret")
	_, err := c.Values(context.Background(), "", "Data!A1:K")
	assert.Error(t, err)
}

func TestClient_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient("SECRET-API-KEY", WithBaseURL(base))
	_, err := c.Values(context.Background(), "sheet", "Data!A1:K")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")
}
