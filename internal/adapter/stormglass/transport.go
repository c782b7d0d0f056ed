package stormglass

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResultKind tags the outcome of a transport call.
type ResultKind int

const (
	// ResultOK means a 2xx response with a body.
	ResultOK ResultKind = iota
	// ResultStatus means the provider answered with a non-2xx status.
	ResultStatus
	// ResultFailure means no response was obtained.
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultStatus:
		return "status"
	case ResultFailure:
		return "failure"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is the tagged outcome of a GET. Status and Body are set for
// ResultOK and ResultStatus; Err is set for ResultFailure.
type Result struct {
	Kind   ResultKind
	Status int
	Body   []byte
	Err    error
}

// OK returns a successful Result.
func OK(body []byte) Result {
	return Result{Kind: ResultOK, Status: http.StatusOK, Body: body}
}

// Rejected returns a Result for a provider that answered with an error status.
func Rejected(status int, body []byte) Result {
	return Result{Kind: ResultStatus, Status: status, Body: body}
}

// Failed returns a Result for a call that never obtained a response.
func Failed(err error) Result {
	return Result{Kind: ResultFailure, Err: err}
}

// Transport performs a GET and reports the outcome as a Result.
type Transport interface {
	Get(ctx context.Context, rawURL string, header http.Header) Result
}

// MaxResponseBytes caps how much of a response body HTTPTransport reads.
// A ten-day hourly forecast for every source is well under 1 MiB.
const MaxResponseBytes = 8 << 20

// HTTPTransport implements Transport on net/http.
type HTTPTransport struct {
	httpClient *http.Client
	maxBody    int64
}

// NewHTTPTransport creates a transport whose requests time out after timeout.
// A zero timeout means no timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBody: MaxResponseBytes,
	}
}

func (t *HTTPTransport) Get(ctx context.Context, rawURL string, header http.Header) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Failed(fmt.Errorf("create request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return Failed(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		return Failed(fmt.Errorf("read response body: %w", err))
	}
	if int64(len(body)) > t.maxBody {
		return Failed(fmt.Errorf("response body exceeds %d bytes", t.maxBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Rejected(resp.StatusCode, body)
	}
	return Result{Kind: ResultOK, Status: resp.StatusCode, Body: body}
}
