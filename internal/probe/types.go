package probe

// Status classifies what came back from one probed request.
type Status int

const (
	// Success: transport round trip completed and the status code was in
	// the acceptable range.
	Success Status = iota
	// HTTPFailure: the endpoint responded, but outside the acceptable range.
	HTTPFailure
	// TransportFailure: no usable response (timeout, DNS, refused, TLS, ...).
	TransportFailure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case HTTPFailure:
		return "http_failure"
	case TransportFailure:
		return "transport_failure"
	}
	return "unknown"
}

// Outcome is the immutable result of one request. Exactly one is produced
// per dispatched request, failures included.
type Outcome struct {
	Status    Status
	Code      int    // HTTP status; set for Success and HTTPFailure
	Kind      string // transport error label; set for TransportFailure
	Message   string
	LatencyMs float64 // wall-clock elapsed, recorded for failures too
}

// Failed reports whether the outcome counts against reliability.
func (o Outcome) Failed() bool { return o.Status != Success }
