// Package oracle is the HTTP client for the remote face-verification service.
//
// The client owns the request timeout, the circuit breaker, and the mapping
// of every failure onto two errors: models.ErrVerificationUnavailable (the
// service could not answer) and models.ErrInvalidSample (it answered that the
// image is unusable). It never records suspicious activity.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rollcall/internal/attendance/models"
	"rollcall/pkg/platform/circuit"
)

// Re-exported for callers that only import the client.
var (
	ErrVerificationUnavailable = models.ErrVerificationUnavailable
	ErrInvalidSample           = models.ErrInvalidSample
)

const (
	defaultTimeout          = 15 * time.Second
	defaultModel            = "Facenet512"
	defaultMaxResponseBytes = 1 << 20
)

type Client struct {
	baseURL          string
	httpClient       *http.Client
	timeout          time.Duration
	model            string
	maxResponseBytes int64
	breaker          *circuit.Breaker
	metrics          *Metrics
	logger           *slog.Logger
	tracer           trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout bounds each call, including reading the response.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithModel names the embedding model recorded on enrolled templates.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseBytes = n
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		httpClient:       &http.Client{},
		timeout:          defaultTimeout,
		model:            defaultModel,
		maxResponseBytes: defaultMaxResponseBytes,
		breaker:          circuit.New("identity-oracle"),
		logger:           slog.Default(),
		tracer:           otel.Tracer("rollcall/oracle"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// verifyResponse is the /verify response body.
type verifyResponse struct {
	Success         bool     `json:"success"`
	Match           bool     `json:"match"`
	Confidence      float64  `json:"confidence"`
	SimilarityScore *float64 `json:"similarity_score"`
	ThresholdUsed   float64  `json:"threshold_used"`
	Message         string   `json:"message"`
	Timestamp       string   `json:"timestamp"`
}

// enrollResponse is the /enroll response body.
type enrollResponse struct {
	Success      bool      `json:"success"`
	Embedding    []float32 `json:"embedding"`
	Message      string    `json:"message"`
	FaceDetected bool      `json:"face_detected"`
	QualityScore *float64  `json:"quality_score"`
}

// errorResponse is the body of a rejected request.
type errorResponse struct {
	Detail any `json:"detail"`
}

// Verify compares sample with tmpl. The oracle's match decision is returned
// as-is; no local threshold is applied.
func (c *Client) Verify(ctx context.Context, sample []byte, tmpl models.Template) (models.VerificationOutcome, error) {
	ctx, span := c.tracer.Start(ctx, "oracle.Verify")
	defer span.End()

	var resp verifyResponse
	err := c.call(ctx, "verify", sample, func(w *multipart.Writer) error {
		embedding, err := json.Marshal(tmpl.Embedding)
		if err != nil {
			return fmt.Errorf("encode stored embedding: %w", err)
		}
		return w.WriteField("stored_embedding", string(embedding))
	}, &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verify failed")
		return models.VerificationOutcome{}, err
	}
	if !resp.Success {
		// No face detected in the sample.
		return models.VerificationOutcome{}, fmt.Errorf("%w: %s", ErrInvalidSample, resp.Message)
	}

	outcome := models.VerificationOutcome{
		Match:         resp.Match,
		Confidence:    clamp(resp.Confidence, 0, 100),
		ThresholdUsed: resp.ThresholdUsed,
	}
	if resp.SimilarityScore != nil {
		outcome.Similarity = *resp.SimilarityScore
	}
	span.SetAttributes(
		attribute.Bool("oracle.match", outcome.Match),
		attribute.Float64("oracle.confidence", outcome.Confidence),
	)
	return outcome, nil
}

// Enroll extracts a template from sample. SubjectID and EnrolledAt are left
// for the caller to fill.
func (c *Client) Enroll(ctx context.Context, sample []byte) (models.Template, error) {
	ctx, span := c.tracer.Start(ctx, "oracle.Enroll")
	defer span.End()

	var resp enrollResponse
	if err := c.call(ctx, "enroll", sample, nil, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enroll failed")
		return models.Template{}, err
	}
	if !resp.Success {
		return models.Template{}, fmt.Errorf("%w: %s", ErrInvalidSample, resp.Message)
	}
	if len(resp.Embedding) == 0 {
		return models.Template{}, fmt.Errorf("%w: empty embedding returned", ErrVerificationUnavailable)
	}
	return models.Template{Embedding: resp.Embedding, Model: c.model}, nil
}

// Health reports whether the oracle answers its health endpoint. It bypasses
// the breaker so readiness reflects the live service.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrVerificationUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxResponseBytes)).Decode(&body); err != nil {
		return fmt.Errorf("%w: parse health response: %v", ErrVerificationUnavailable, err)
	}
	if body.Status != "healthy" {
		return fmt.Errorf("%w: oracle reports %q", ErrVerificationUnavailable, body.Status)
	}
	return nil
}

// call posts sample (plus any extra fields) to /<operation> and decodes a 200
// response into out. Every error it returns wraps one of the two sentinels.
func (c *Client) call(ctx context.Context, operation string, sample []byte, fields func(*multipart.Writer) error, out any) error {
	start := time.Now()
	result := resultUnavailable
	defer func() {
		c.metrics.ObserveCall(operation, result, time.Since(start))
	}()

	format, err := CheckSample(sample)
	if err != nil {
		result = resultInvalidSample
		return err
	}

	if !c.breaker.Allow() {
		result = resultCircuitOpen
		return fmt.Errorf("%w: circuit open", ErrVerificationUnavailable)
	}

	body, contentType, err := encodeMultipart(sample, format, fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/"+operation, body)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrVerificationUnavailable, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller that gave up says nothing about the oracle's health.
		if ctx.Err() == nil {
			c.recordFailure(ctx, operation, err)
		}
		return fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes))
	if err != nil {
		if ctx.Err() == nil {
			c.recordFailure(ctx, operation, err)
		}
		return fmt.Errorf("%w: read response: %v", ErrVerificationUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(raw, out); err != nil {
			c.recordFailure(ctx, operation, err)
			return fmt.Errorf("%w: parse response: %v", ErrVerificationUnavailable, err)
		}
		c.recordSuccess(ctx)
		result = resultOK
		if v, ok := out.(*verifyResponse); ok && (!v.Success || !v.Match) {
			result = resultNoMatch
			if !v.Success {
				result = resultInvalidSample
			}
		}
		return nil

	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnsupportedMediaType,
		resp.StatusCode == http.StatusUnprocessableEntity:
		// The oracle is healthy; it rejected this image.
		c.recordSuccess(ctx)
		result = resultInvalidSample
		return fmt.Errorf("%w: %s", ErrInvalidSample, detail(raw, resp.StatusCode))

	default:
		err := fmt.Errorf("%w: %s", ErrVerificationUnavailable, detail(raw, resp.StatusCode))
		c.recordFailure(ctx, operation, err)
		return err
	}
}

func (c *Client) recordFailure(ctx context.Context, operation string, cause error) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.metrics.SetBreakerOpen(true)
		c.logger.WarnContext(ctx, "identity oracle circuit opened",
			"operation", operation,
			"breaker", c.breaker.Name(),
			"error", cause,
		)
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.metrics.SetBreakerOpen(false)
		c.logger.InfoContext(ctx, "identity oracle circuit closed", "breaker", c.breaker.Name())
	}
}

func encodeMultipart(sample []byte, format string, fields func(*multipart.Writer) error) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="sample.`+format+`"`)
	h.Set("Content-Type", mimeType(format))
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(sample); err != nil {
		return nil, "", fmt.Errorf("write image data: %w", err)
	}
	if fields != nil {
		if err := fields(writer); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// detail extracts the service's error message without echoing large bodies.
func detail(raw []byte, status int) string {
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != nil {
		return fmt.Sprintf("status %d: %v", status, body.Detail)
	}
	return fmt.Sprintf("status %d", status)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
