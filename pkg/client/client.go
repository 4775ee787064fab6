package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/garnizeh/worklog/pkg/models"
)

// package-level logger for pkg/client; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/client. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client is a typed HTTP client with one method per worklog endpoint.
type Client struct {
	base   *url.URL
	cfg    Config
	client *http.Client
	closed int32
}

// NewEmployee is the payload for AddEmployee.
type NewEmployee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsBoss   bool   `json:"isBoss"`
}

// NewEntry is the payload for SubmitEntry.
type NewEntry struct {
	EmployeeID  int64   `json:"employeeId"`
	HoursWorked float64 `json:"hoursWorked"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type entryUpdateBody struct {
	HoursWorked float64 `json:"hoursWorked"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type loginResult struct {
	Success bool             `json:"success"`
	User    *models.Employee `json:"user"`
}

type createdResult struct {
	ID int64 `json:"id"`
}

// NewClient creates a client for cfg.BaseURL. A nil httpClient gets a default
// transport with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 15 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		}
	}

	return &Client{base: u, cfg: cfg, client: httpClient}, nil
}

// Close releases idle connections held by the underlying transport. Close is
// idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.doJSON(ctx, http.MethodGet, "/api/employees", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login returns the employee row for a valid username/password pair.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Employee, error) {
	var out loginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, body, &out); err != nil {
		if statusOf(err) == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, ErrInvalidCredentials
	}
	return out.User, nil
}

func (c *Client) ListEntries(ctx context.Context, employeeID int64) ([]models.WorkEntry, error) {
	q := url.Values{"employeeId": {strconv.FormatInt(employeeID, 10)}}
	var out []models.WorkEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/entries", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitEntry records hours and returns the new entry id.
func (c *Client) SubmitEntry(ctx context.Context, e NewEntry) (int64, error) {
	var out createdResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/entries", nil, e, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateEntry overwrites an entry. The server reports success for unknown ids.
func (c *Client) UpdateEntry(ctx context.Context, id int64, u models.EntryUpdate) error {
	body := entryUpdateBody{HoursWorked: u.HoursWorked, Date: u.Date, Description: u.Description}
	return c.doJSON(ctx, http.MethodPut, "/api/entries/"+strconv.FormatInt(id, 10), nil, body, nil)
}

// MonthlyTotals fetches the monthly aggregate. When the month has no rows it
// returns an empty slice together with ErrNoEntries.
func (c *Client) MonthlyTotals(ctx context.Context, month int, employeeID *int64) ([]models.MonthlyTotal, error) {
	var out []models.MonthlyTotal
	if err := c.doJSON(ctx, http.MethodGet, "/api/entries/month", monthQuery(month, employeeID), nil, &out); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return []models.MonthlyTotal{}, ErrNoEntries
		}
		return nil, err
	}
	return out, nil
}

// ExportMonthly downloads the monthly aggregate as an XLSX workbook.
func (c *Client) ExportMonthly(ctx context.Context, month int, employeeID *int64) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/entries/month/export", monthQuery(month, employeeID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, ErrNoEntries
		}
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) Summary(ctx context.Context) (*models.Summary, error) {
	var out models.Summary
	if err := c.doJSON(ctx, http.MethodGet, "/api/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEmployee creates an employee and returns its id.
func (c *Client) AddEmployee(ctx context.Context, e NewEmployee) (int64, error) {
	var out createdResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/employees", nil, e, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Health returns nil when the server and its store are reachable.
func (c *Client) Health(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func monthQuery(month int, employeeID *int64) url.Values {
	q := url.Values{"month": {strconv.Itoa(month)}}
	if employeeID != nil {
		q.Set("employeeId", strconv.FormatInt(*employeeID, 10))
	}
	return q
}

// doJSON sends in as the JSON body (when not nil) and decodes a 2xx response
// into out (when not nil).
func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	resp, err := c.send(ctx, method, path, q, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send issues the request. GET requests that fail before a response arrives
// are retried up to cfg.Retries times.
func (c *Client) send(ctx context.Context, method, path string, q url.Values, in any) (*http.Response, error) {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	// the base may carry a path prefix when the server sits behind a proxy
	u := c.base.JoinPath(path)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	u.RawQuery = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	attempts := 1
	if method == http.MethodGet && c.cfg.Retries > 0 {
		attempts += c.cfg.Retries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			logger.Debug("worklog client: retrying", slog.String("path", path), slog.Int("attempt", attempt), slog.Any("err", lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.Backoff * time.Duration(attempt)):
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%s %s: %w", method, path, lastErr)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(b, &body) == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
