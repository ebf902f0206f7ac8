package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hiraeth92/BMC-API-Reliability-Test/internal/logging"
)

// Transport failure kinds.
const (
	KindTimeout   = "timeout"
	KindDNS       = "dns"
	KindTLS       = "tls"
	KindConnect   = "connect"
	KindRequest   = "request"
	KindTransport = "transport"
)

// Executor issues single GET requests and classifies what came back. It is
// total: every call returns an Outcome, never an error, so the runner can
// count on exactly one result per dispatched request.
type Executor struct {
	client    *http.Client
	acceptMin int
	acceptMax int
	log       *logging.Sink
}

// NewExecutor builds an executor with a hard per-request deadline covering
// connect, TLS handshake, and body read. Statuses in [acceptMin, acceptMax]
// count as success.
func NewExecutor(timeoutMs, acceptMin, acceptMax int, log *logging.Sink) *Executor {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxConnsPerHost = 2000
	t.MaxIdleConnsPerHost = 2000
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Executor{
		client: &http.Client{
			Timeout:   time.Duration(timeoutMs) * time.Millisecond,
			Transport: t,
		},
		acceptMin: acceptMin,
		acceptMax: acceptMax,
		log:       log,
	}
}

// Execute fires one GET at url and measures wall-clock latency. Failures are
// captured into the Outcome, never returned; slow failures keep their
// elapsed time since they are a reliability signal in their own right.
// Successful requests are not logged to keep the report readable.
func (e *Executor) Execute(ctx context.Context, url string) Outcome {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		out := Outcome{
			Status:    TransportFailure,
			Kind:      KindRequest,
			Message:   err.Error(),
			LatencyMs: float64(time.Since(start)) / float64(time.Millisecond),
		}
		e.log.Error("request failed", "url", url, "kind", out.Kind, "err", err)
		return out
	}

	resp, err := e.client.Do(req)
	lat := float64(time.Since(start)) / float64(time.Millisecond)

	if err != nil {
		out := Outcome{
			Status:    TransportFailure,
			Kind:      classify(err),
			Message:   err.Error(),
			LatencyMs: lat,
		}
		e.log.Error("request failed", "url", url, "kind", out.Kind, "latency_ms", lat, "err", err)
		return out
	}

	// Latency is measured to header receipt; drain so the connection can
	// be reused by the next worker.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < e.acceptMin || resp.StatusCode > e.acceptMax {
		out := Outcome{
			Status:    HTTPFailure,
			Code:      resp.StatusCode,
			Message:   http.StatusText(resp.StatusCode),
			LatencyMs: lat,
		}
		e.log.Error("request failed", "url", url, "status", resp.StatusCode, "latency_ms", lat)
		return out
	}

	return Outcome{Status: Success, Code: resp.StatusCode, LatencyMs: lat}
}

// classify maps a transport-level error to a stable kind label. Order
// matters: DNS errors are also *net.OpError, so they are checked first.
func classify(err error) string {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &recErr) {
		return KindTLS
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnect
	}
	return KindTransport
}
