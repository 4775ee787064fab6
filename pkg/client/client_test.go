package client_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/garnizeh/worklog/api"
	dbfs "github.com/garnizeh/worklog/db"
	"github.com/garnizeh/worklog/internal/config"
	"github.com/garnizeh/worklog/internal/db"
	"github.com/garnizeh/worklog/pkg/client"
	"github.com/garnizeh/worklog/pkg/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newServer(t *testing.T) *client.Client {
	t.Helper()
	ctx := context.Background()
	api.SetLogger(quietLogger())
	client.SetLogger(quietLogger())

	d, err := db.New(ctx, db.SQLite, ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(ctx, d, dbfs.Schema))

	srv := httptest.NewServer(api.SetupRoutes(&config.Config{QueryTimeout: 5 * time.Second}, "test", "now", d))

	cfg := client.DefaultConfig()
	cfg.BaseURL = srv.URL
	c, err := client.NewClient(cfg, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		srv.Close()
		d.Close()
	})
	return c
}

func TestClientAgainstServer(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	employees, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Summary{AverageHoursPerEmployee: "0.00"}, *sum)

	bobID, err := c.AddEmployee(ctx, client.NewEmployee{Name: "Bob", Email: "bob@example.com", Username: "bob", Password: "geslo123"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, bobID)

	_, err = c.AddEmployee(ctx, client.NewEmployee{Name: "Bob", Username: "bob", Password: "x"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to add employee", apiErr.Message)

	user, err := c.Login(ctx, "bob", "geslo123")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = c.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, client.ErrInvalidCredentials)

	entryID, err := c.SubmitEntry(ctx, client.NewEntry{EmployeeID: bobID, HoursWorked: 7.5, Date: "2024-02-10", Description: "review"})
	require.NoError(t, err)

	require.NoError(t, c.UpdateEntry(ctx, entryID, models.EntryUpdate{HoursWorked: 8, Date: "2024-02-10", Description: "review"}))

	entries, err := c.ListEntries(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 8.0, entries[0].HoursWorked, 1e-9)

	totals, err := c.MonthlyTotals(ctx, 2, &bobID)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.InDelta(t, 8.0, totals[0].TotalHours, 1e-9)

	totals, err = c.MonthlyTotals(ctx, 9, nil)
	assert.ErrorIs(t, err, client.ErrNoEntries)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)

	data, err := c.ExportMonthly(ctx, 2, nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	_, err = c.ExportMonthly(ctx, 9, nil)
	assert.ErrorIs(t, err, client.ErrNoEntries)
}

func TestClient_ErrorMessages(t *testing.T) {
	client.SetLogger(quietLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/employees":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to fetch employees"}`))
		case "/api/summary":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable","service":"worklog"}`))
		}
	}))
	defer srv.Close()

	c, err := client.NewClient(client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, srv.Client())
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, err = c.ListEmployees(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch employees", apiErr.Message)

	_, err = c.Summary(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)

	err = c.Health(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

// flakyTransport fails the first n round trips before delegating.
type flakyTransport struct {
	n     int32
	calls int32
	next  http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if atomic.AddInt32(&f.calls, 1) <= f.n {
		return nil, errors.New("connection reset")
	}
	return f.next.RoundTrip(req)
}

func TestClient_RetriesReads(t *testing.T) {
	client.SetLogger(quietLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tr := &flakyTransport{n: 2, next: srv.Client().Transport}
	cfg := client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second, Retries: 2, Backoff: time.Millisecond}
	c, err := client.NewClient(cfg, &http.Client{Transport: tr})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&tr.calls))

	// writes are not retried
	atomic.StoreInt32(&tr.calls, 0)
	_, err = c.SubmitEntry(context.Background(), client.NewEntry{EmployeeID: 1})
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&tr.calls))
}

func TestClient_BaseURLPathPrefix(t *testing.T) {
	client.SetLogger(quietLogger())
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/worklog/api/entries/month":
			_, _ = w.Write([]byte(`[]`))
		default:
			_, _ = w.Write([]byte(`{"status":"ok","service":"worklog"}`))
		}
	}))
	defer srv.Close()

	for _, base := range []string{srv.URL + "/worklog", srv.URL + "/worklog/"} {
		paths = nil
		c, err := client.NewClient(client.Config{BaseURL: base, Timeout: 2 * time.Second}, srv.Client())
		require.NoError(t, err)

		require.NoError(t, c.Health(context.Background()))
		_, err = c.MonthlyTotals(context.Background(), 3, nil)
		require.NoError(t, err)
		require.NoError(t, c.Close())

		assert.Equal(t, []string{"/worklog/health?", "/worklog/api/entries/month?month=3"}, paths, "base %s", base)
	}
}
