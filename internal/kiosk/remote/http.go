package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/logging"
)

// HTTPClient is the concrete Client speaking JSON over HTTP to the wellness
// backend. Every call is bounded by a fixed timeout and tagged with an
// X-Request-Id header for correlation in backend logs.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: timeout,
		log:     log.With("component", "remote"),
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one JSON request/response round trip. A nil in means no body
// (GET); a nil out discards the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "remote call failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %v: %w", method, path, err, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &ServiceError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *HTTPClient) DetectFace(ctx context.Context, image []byte) (*Detection, error) {
	req := struct {
		Image string `json:"image"`
	}{Image: base64.StdEncoding.EncodeToString(image)}

	var d Detection
	if err := c.do(ctx, http.MethodPost, "/face/detect", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) RecognizeFace(ctx context.Context, image []byte) (*Recognition, error) {
	req := struct {
		Image string `json:"image"`
	}{Image: base64.StdEncoding.EncodeToString(image)}

	var r Recognition
	if err := c.do(ctx, http.MethodPost, "/face/recognize", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) EnrollFace(ctx context.Context, name string, images [][]byte) (*Enrollment, error) {
	encoded := make([]string, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, base64.StdEncoding.EncodeToString(img))
	}
	req := struct {
		Name   string   `json:"name"`
		Images []string `json:"images"`
	}{Name: name, Images: encoded}

	var e Enrollment
	if err := c.do(ctx, http.MethodPost, "/face/enroll", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) TriggerAnalysis(ctx context.Context, userID string) (*Analysis, error) {
	req := struct {
		UserID string `json:"user_id,omitempty"`
	}{UserID: userID}

	var a Analysis
	if err := c.do(ctx, http.MethodPost, "/analyze", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, name string) (*User, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: name}

	var u User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) AnalysisHistory(ctx context.Context, userID string, limit, offset int) (*HistoryPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var p HistoryPage
	path := "/analysis/history/" + url.PathEscape(userID) + "?" + q.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
