package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmconsole/internal/platform/metrics"
)

func TestDecodePlainEnvelope(t *testing.T) {
	env, err := Decode([]byte(`{"statusCode":1,"message":"ok","dataFetch":{"table":[{"ShiftID":7,"ShiftName":"Night"}]}}`))
	require.NoError(t, err)
	assert.True(t, env.OK())

	rows, err := env.Table("table")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].String("ShiftID"))
	assert.Equal(t, "Night", rows[0].String("shiftname"))
}

func TestDecodeDoubleEncodedEnvelope(t *testing.T) {
	inner := `{"statusCode":"1","dataFetch":"{\"table\":[{\"BranchID\":3}],\"table1\":[]}"}`
	outer, err := json.Marshal(inner)
	require.NoError(t, err)

	env, err := Decode(outer)
	require.NoError(t, err)
	assert.Equal(t, 1, env.StatusCode)

	rows, err := env.Table("table")
	require.NoError(t, err)
	assert.Equal(t, "3", rows[0].String("BranchID"))

	empty, err := env.Table("table1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	missing, err := env.Table("table9")
	require.NoError(t, err)
	assert.NotNil(t, missing)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, body := range []string{"", "<html>", `{"statusCode":"one"}`, `"not json"`} {
		_, err := Decode([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestRecordBool(t *testing.T) {
	r := Record{"IsActive": json.Number("1"), "Taxable": true, "Night": "N"}
	assert.True(t, r.Bool("IsActive"))
	assert.True(t, r.Bool("taxable"))
	assert.False(t, r.Bool("Night"))
	assert.False(t, r.Bool("Missing"))
}

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Collector) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	collector := metrics.New()
	client, err := New(srv.URL, 2*time.Second, collector)
	require.NoError(t, err)
	return client, collector
}

func TestClientGetSendsQuery(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Master/DeleteShift", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("ShiftID"))
		_, _ = io.WriteString(w, `{"statusCode":1,"message":"Deleted"}`)
	})

	env, err := client.Do(context.Background(), http.MethodGet, "/api/Master/DeleteShift", url.Values{"ShiftID": {"7"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Deleted", env.Message)
}

func TestClientPostSendsJSON(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Night", body["ShiftName"])
		_, _ = io.WriteString(w, `{"statusCode":1}`)
	})

	_, err := client.Do(context.Background(), http.MethodPost, "/api/Master/SaveShift", nil, map[string]any{"ShiftName": "Night"})
	require.NoError(t, err)
}

func TestClientApplicationFailure(t *testing.T) {
	client, collector := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":0,"message":"Shift is in use"}`)
	})

	env, err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrApplication))
	require.NotNil(t, env)

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Shift is in use", be.Message)

	outcomes := collector.Snapshot()["backend"].(map[string]any)["outcomes"].(map[string]uint64)
	assert.Equal(t, uint64(1), outcomes[metrics.OutcomeApplication])
}

func TestClientHTTPStatusFailure(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"statusCode":0,"message":"boom"}`)
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.True(t, errors.Is(err, ErrHTTPStatus))
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusInternalServerError, be.Status)
	assert.Equal(t, "Request failed: boom", be.Message)
}

func TestClientParseFailure(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := New(base, time.Second, nil)
	require.NoError(t, err)
	_, err = client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestNewRejectsNonHTTPURL(t *testing.T) {
	_, err := New("ftp://example.com", time.Second, nil)
	assert.Error(t, err)
}
