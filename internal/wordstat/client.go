package wordstat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/keywordstat/internal/model"
)

// Default client settings. The poll cadence matches the report API's
// observed generation times: reports are usually ready within a few
// seconds, so a 2-second interval keeps latency low without hammering the
// endpoint, and 60 seconds is comfortably past the slowest observed case.
const (
	// DefaultAPIURL is the Yandex Direct v4 JSON endpoint that hosts the
	// Wordstat report methods.
	DefaultAPIURL = "https://api.direct.yandex.ru/v4/json/"

	// DefaultPollInterval is the delay between report readiness checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxWait is the total budget for a report to become ready.
	DefaultMaxWait = 60 * time.Second

	// defaultRequestTimeout bounds each individual HTTP request.
	defaultRequestTimeout = 30 * time.Second

	// deleteTimeout bounds the report deletion performed during cleanup.
	// Deletion runs even when the caller's context is already cancelled,
	// so it needs its own bound.
	deleteTimeout = 10 * time.Second
)

// Wordstat report API method names.
const (
	methodCreateReport = "CreateNewWordstatReport"
	methodGetReport    = "GetWordstatReport"
	methodDeleteReport = "DeleteWordstatReport"
)

// Client talks to the Yandex Wordstat report API. It implements the
// provider.Provider interface.
//
// The zero value is not usable; create clients with NewClient. A Client is
// safe for concurrent use: it holds only immutable configuration, and each
// Fetch call builds and tears down its own HTTP client.
type Client struct {
	// oauthToken is the bearer credential attached to every request.
	oauthToken string

	// clientLogin is the optional Client-Login header value.
	clientLogin string

	// apiURL is the RPC endpoint.
	apiURL string

	// pollInterval is the delay between readiness checks.
	pollInterval time.Duration

	// maxWait is the total budget for a report to become ready.
	maxWait time.Duration

	// requestTimeout bounds each individual HTTP request.
	requestTimeout time.Duration

	// logger receives debug/warn events. Never nil after NewClient.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithClientLogin sets the Client-Login header attached to every request.
// Required for agency accounts, ignored otherwise.
func WithClientLogin(login string) Option {
	return func(c *Client) {
		c.clientLogin = login
	}
}

// WithAPIURL overrides the API endpoint. Used in tests to point the client
// at a fake server.
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiURL = url
		}
	}
}

// WithPollInterval overrides the delay between readiness checks.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxWait overrides the total report readiness budget.
func WithMaxWait(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxWait = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Wordstat API client authenticated with the given
// OAuth token.
func NewClient(oauthToken string, opts ...Option) *Client {
	c := &Client{
		oauthToken:     oauthToken,
		apiURL:         DefaultAPIURL,
		pollInterval:   DefaultPollInterval,
		maxWait:        DefaultMaxWait,
		requestTimeout: defaultRequestTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "wordstat"
}

// rpcRequest is the wire format of every API call.
type rpcRequest struct {
	Method string `json:"method"`
	Param  any    `json:"param"`
}

// rpcResponse is the wire format of every API response: either a result
// payload in data or an error envelope.
type rpcResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *rpcError       `json:"error"`
}

// rpcError is the service's error envelope.
type rpcError struct {
	Code   json.Number `json:"error_code"`
	Detail string      `json:"error_detail"`
	String string      `json:"error_string"`
}

// reportItem is one entry of a ready Wordstat report.
type reportItem struct {
	Phrase       string       `json:"Phrase"`
	Shows        *int         `json:"Shows"`
	SearchedAlso []reportItem `json:"SearchedAlso"`
}

// Fetch retrieves keyword data for the given phrases.
//
// It creates a report, polls it until ready, extracts one row per phrase
// plus one per related SearchedAlso phrase, and deletes the report. The
// report is deleted exactly once on every exit path; deletion failures are
// logged and swallowed because the fetch outcome takes precedence over
// cleanup.
//
// The per-call HTTP client is torn down when Fetch returns. Cancelling ctx
// aborts the poll loop; if a report was already created it is still
// deleted, on a detached short-lived context.
func (c *Client) Fetch(ctx context.Context, phrases []string, withFrequency bool) (rows []model.KeywordRow, err error) {
	httpClient := &http.Client{Timeout: c.requestTimeout}
	defer httpClient.CloseIdleConnections()

	reportID, err := c.createReport(ctx, httpClient, phrases)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("wordstat report created", "reportID", reportID, "phrases", len(phrases))

	// The report exists server-side from this point on: release it no
	// matter how the rest of the fetch ends. A detached context keeps
	// the deletion possible after ctx is cancelled.
	defer func() {
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
		defer cancel()
		if delErr := c.deleteReport(delCtx, httpClient, reportID); delErr != nil {
			c.logger.Warn("failed to delete wordstat report", "reportID", reportID, "error", delErr)
		}
	}()

	items, err := c.waitForReport(ctx, httpClient, reportID)
	if err != nil {
		return nil, err
	}

	return extractRows(items, withFrequency, time.Now()), nil
}

// createReport submits the phrase list and returns the new report ID.
func (c *Client) createReport(ctx context.Context, httpClient *http.Client, phrases []string) (int, error) {
	data, err := c.call(ctx, httpClient, methodCreateReport, map[string]any{"Phrases": phrases})
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, newProtocolError("create report: response has no data field", nil)
	}

	var reportID int
	if err := json.Unmarshal(data, &reportID); err != nil {
		return 0, newProtocolError("create report: data is not a report ID", err)
	}
	return reportID, nil
}

// getReport fetches the report once. It returns (nil, false, nil) while the
// report is still being generated.
func (c *Client) getReport(ctx context.Context, httpClient *http.Client, reportID int) ([]reportItem, bool, error) {
	data, err := c.call(ctx, httpClient, methodGetReport, map[string]any{"ReportID": reportID})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		// No data and no error envelope means the report is not ready.
		return nil, false, nil
	}

	var items []reportItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, newProtocolError("get report: undecodable data payload", err)
	}
	return items, true, nil
}

// deleteReport releases the server-side report.
func (c *Client) deleteReport(ctx context.Context, httpClient *http.Client, reportID int) error {
	_, err := c.call(ctx, httpClient, methodDeleteReport, map[string]any{"ReportID": reportID})
	return err
}

// waitForReport polls the report until it is ready or the wait budget is
// spent. The poll sleep is cooperative: context cancellation interrupts it
// immediately.
func (c *Client) waitForReport(ctx context.Context, httpClient *http.Client, reportID int) ([]reportItem, error) {
	deadline := time.Now().Add(c.maxWait)

	for {
		items, ready, err := c.getReport(ctx, httpClient, reportID)
		if err != nil {
			return nil, err
		}
		if ready {
			return items, nil
		}

		if time.Now().After(deadline.Add(-c.pollInterval)) {
			return nil, &APIError{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("report %d not ready after %s", reportID, c.maxWait),
			}
		}

		select {
		case <-ctx.Done():
			return nil, &APIError{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("report %d: wait aborted: %s", reportID, ctx.Err()),
				cause:   ctx.Err(),
			}
		case <-time.After(c.pollInterval):
		}
	}
}

// call performs one RPC round trip and translates every failure mode into
// an *APIError. The create, poll, and delete paths all share this
// translation. A nil data return with a nil error means the service has
// not produced a result yet.
func (c *Client) call(ctx context.Context, httpClient *http.Client, method string, param any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{Method: method, Param: param})
	if err != nil {
		return nil, newProtocolError(fmt.Sprintf("%s: encode request", method), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, newTransportError(fmt.Sprintf("%s: build request", method), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.oauthToken)
	req.Header.Set("Accept-Language", "ru")
	if c.clientLogin != "" {
		req.Header.Set("Client-Login", c.clientLogin)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		// Cancellation mid-request surfaces as the same timeout kind as
		// cancellation between polls, so callers see one failure mode.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &APIError{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("%s: aborted: %s", method, ctxErr),
				cause:   ctxErr,
			}
		}
		return nil, newTransportError(fmt.Sprintf("%s: request failed", method), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused within this fetch.
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // Best effort drain
		return nil, newTransportError(fmt.Sprintf("%s: unexpected status %s", method, resp.Status), nil)
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, newProtocolError(fmt.Sprintf("%s: undecodable response", method), err)
	}

	if envelope.Error != nil {
		return nil, &APIError{
			Kind:    KindAPI,
			Code:    envelope.Error.Code.String(),
			Message: errorString(envelope.Error),
		}
	}
	return envelope.Data, nil
}

// errorString picks the most descriptive message from an error envelope.
func errorString(e *rpcError) string {
	if e.Detail != "" {
		return e.String + ": " + e.Detail
	}
	if e.String != "" {
		return e.String
	}
	return "unknown error"
}

// extractRows flattens report items into keyword rows: one row per primary
// phrase followed by one per SearchedAlso phrase nested under it. Shows
// becomes the frequency only when requested and present.
func extractRows(items []reportItem, withFrequency bool, createdAt time.Time) []model.KeywordRow {
	rows := make([]model.KeywordRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow(item, withFrequency, createdAt))
		for _, related := range item.SearchedAlso {
			rows = append(rows, itemRow(related, withFrequency, createdAt))
		}
	}
	return rows
}

// itemRow converts one report item into a keyword row.
func itemRow(item reportItem, withFrequency bool, createdAt time.Time) model.KeywordRow {
	if withFrequency && item.Shows != nil {
		return model.NewKeywordRowWithFrequency(item.Phrase, *item.Shows, model.SourceWordstat, createdAt)
	}
	return model.NewKeywordRow(item.Phrase, model.SourceWordstat, createdAt)
}

// IsTimeout reports whether err is a Wordstat timeout error.
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}
