package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
)

// ErrorKind classifies gateway failures so the sync job can report transport
// problems, upstream faults and timeouts distinctly.
type ErrorKind string

const (
	KindTimeout  ErrorKind = "timeout"
	KindHTTP     ErrorKind = "http"
	KindUpstream ErrorKind = "upstream"
	KindDecode   ErrorKind = "decode"
)

type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("attendance gateway %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("attendance gateway %s error: %s", e.Kind, e.Message)
}

// EmployeeRecord is one roster row from the device service.
type EmployeeRecord struct {
	UserID FlexString `json:"user_id"`
	Name   string     `json:"name"`
}

// PunchRecord is one raw punch log row from the device service.
type PunchRecord struct {
	UserID     FlexString `json:"user_id"`
	State      FlexString `json:"state"`
	PunchTime  string     `json:"punch_time"`
	VerifyMode *int       `json:"verify_mode"`
}

// Timestamp parses the upstream punch_time string.
func (p PunchRecord) Timestamp() (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", p.PunchTime); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, p.PunchTime)
}

// FlexString decodes upstream fields that arrive as either a JSON string or
// a bare number, a known inconsistency of the device API.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// The upstream service is known to leak database exceptions into 200 OK
// bodies; such responses are upstream faults, not data.
var upstreamFaultRegex = regexp.MustCompile(`java\.sql\.|Exception`)

// Client talks to the external biometric attendance service. It is read-only
// and applies no retry policy of its own; the caller decides when to retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchEmployees retrieves the device-side employee roster.
func (c *Client) FetchEmployees(ctx context.Context) ([]EmployeeRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/APIUsers?ID=1", nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeList[EmployeeRecord](body)
	if err != nil {
		return nil, &GatewayError{Kind: KindDecode, Message: err.Error()}
	}
	return records, nil
}

type punchLogsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FetchPunchLogs retrieves punch logs for the inclusive date range. The
// upstream expects DD/MM/YYYY date strings.
func (c *Client) FetchPunchLogs(ctx context.Context, startDate, endDate time.Time) ([]PunchRecord, error) {
	payload, err := json.Marshal(punchLogsRequest{
		StartDate: startDate.Format("02/01/2006"),
		EndDate:   endDate.Format("02/01/2006"),
	})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, "/APILogs?ID=1", payload)
	if err != nil {
		return nil, err
	}

	records, err := decodeList[PunchRecord](body)
	if err != nil {
		return nil, &GatewayError{Kind: KindDecode, Message: err.Error()}
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			return nil, &GatewayError{Kind: KindTimeout, Message: err.Error()}
		}
		return nil, &GatewayError{Kind: KindHTTP, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{Kind: KindHTTP, Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if upstreamFaultRegex.Match(body) {
		return nil, &GatewayError{Kind: KindUpstream, Status: resp.StatusCode, Message: "upstream returned an embedded database error"}
	}

	return body, nil
}

// decodeList accepts both response shapes the upstream produces: a bare JSON
// array, or an object wrapping the array under "data".
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []T
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Data, nil
}
