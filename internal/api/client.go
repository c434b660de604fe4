// Package api is the HTTP boundary to the remote classification service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/media"
)

// ImageField is the multipart field the service reads the upload from
const ImageField = "image"

// maxResponseSize is the largest response body accepted; longer bodies are an error
const maxResponseSize = 4 << 20

// Client talks to the remote analysis service
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	now     func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithClock overrides the source of client-side timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the service described by config
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, newErrorWithCause(KindConfiguration, "configure", "invalid base URL", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, newError(KindConfiguration, "configure", fmt.Sprintf("unsupported URL scheme: %q", baseURL.Scheme))
	}

	c := &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Submit uploads img for classification
func (c *Client) Submit(ctx context.Context, img *media.Image) (*Submission, error) {
	const op = "submit"

	if img == nil || len(img.Data) == 0 {
		return nil, newError(KindInternal, op, "no image to submit")
	}

	body, contentType, err := encodeImage(img)
	if err != nil {
		return nil, newErrorWithCause(KindInternal, op, "failed to encode multipart body", err)
	}

	endpoint := c.baseURL.JoinPath("/analyze")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return nil, newErrorWithCause(KindInternal, op, "failed to create request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newErrorWithCause(KindValidation, op, "failed to decode response", err)
	}

	if resp.Result == nil || *resp.Result == "" {
		return nil, newError(KindValidation, op, "response has no result")
	}
	prediction, err := common.ParsePrediction(*resp.Result)
	if err != nil {
		return nil, newErrorWithCause(KindValidation, op, "response has an unrecognized result", err)
	}

	pneumonia, ok := parseNumber(resp.PneumoniaProb)
	if !ok {
		return nil, newError(KindValidation, op, "response has no numeric pneumonia_prob")
	}
	normal, ok := parseNumber(resp.NormalProb)
	if !ok {
		normal = 1 - pneumonia
	}

	timestamp := resp.Timestamp
	if timestamp == "" {
		timestamp = c.now().UTC().Format(time.RFC3339Nano)
	}

	return &Submission{
		Prediction:           prediction.String(),
		PneumoniaProbability: pneumonia,
		NormalProbability:    normal,
		Timestamp:            timestamp,
		ImagePath:            resp.ImagePath,
	}, nil
}

// FetchHistory retrieves past analyses in the order the service returns them
func (c *Client) FetchHistory(ctx context.Context) ([]common.AnalysisResult, error) {
	const op = "fetch_history"

	endpoint := c.baseURL.JoinPath("/history")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, newErrorWithCause(KindInternal, op, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	data, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	var records []historyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, newErrorWithCause(KindValidation, op, "failed to decode response", err)
	}

	results := make([]common.AnalysisResult, 0, len(records))
	for i, rec := range records {
		result, err := rec.toResult()
		if err != nil {
			return nil, newErrorWithCause(KindValidation, op, fmt.Sprintf("invalid record at index %d", i), err)
		}
		results = append(results, result)
	}
	return results, nil
}

// do performs req and returns the body of a 2xx response
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newErrorWithCause(KindTransport, op, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, newErrorWithCause(KindTransport, op, "failed to read response", err)
	}
	if len(data) > maxResponseSize {
		return nil, newError(KindTransport, op, fmt.Sprintf("response too large: exceeds %d bytes", maxResponseSize))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(KindTransport, op, fmt.Sprintf("request failed with status %d", resp.StatusCode))
		apiErr.StatusCode = resp.StatusCode
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return nil, apiErr
	}

	return data, nil
}

func (r historyRecord) toResult() (common.AnalysisResult, error) {
	id, ok := parseID(r.ID)
	if !ok {
		return common.AnalysisResult{}, fmt.Errorf("missing id")
	}
	if r.Result == nil {
		return common.AnalysisResult{}, fmt.Errorf("record %s has no result", id)
	}
	prediction, err := common.ParsePrediction(*r.Result)
	if err != nil {
		return common.AnalysisResult{}, fmt.Errorf("record %s: %w", id, err)
	}
	pneumonia, ok := parseNumber(r.PneumoniaProb)
	if !ok {
		return common.AnalysisResult{}, fmt.Errorf("record %s has no numeric pneumonia_prob", id)
	}
	normal, ok := parseNumber(r.NormalProb)
	if !ok {
		normal = 1 - pneumonia
	}

	return common.AnalysisResult{
		ID:         id,
		Prediction: prediction,
		Probabilities: common.Probabilities{
			Pneumonia: pneumonia,
			Normal:    normal,
		},
		Timestamp: r.AnalyzedAt,
		ImagePath: r.ImagePath,
	}, nil
}

// encodeImage builds a multipart body with the image in ImageField
func encodeImage(img *media.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ImageField, img.Name))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
