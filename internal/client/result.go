package client

// FailKind classifies why an API operation failed.
type FailKind string

const (
	// FailTransport covers connection refusals, DNS failures, TLS failures
	// and timeouts.
	FailTransport FailKind = "transport"
	// FailStatus marks a non-2xx HTTP response.
	FailStatus FailKind = "status"
	// FailDecode marks a response body which wasn't valid JSON.
	FailDecode FailKind = "decode"
)

// Failure describes why an operation didn't produce a body. Status is only
// set by the health check, which reports "unhealthy" on any failure.
type Failure struct {
	Kind    FailKind
	Message string
	Status  string
}

// Result is the outcome of one API operation. Exactly one of Body and
// Failure is set; callers branch on OK() rather than probing the body for
// an "error" key.
type Result struct {
	Body    map[string]any
	Failure *Failure
}

func (r Result) OK() bool { return r.Failure == nil }

// Map renders the result in the wire-compatible shape: the decoded body on
// success, {"error": ..., "status"?: ...} on failure. The printers use this
// so that output mirrors what the server (or the failure) produced.
func (r Result) Map() map[string]any {
	if r.OK() {
		return r.Body
	}
	m := map[string]any{"error": r.Failure.Message}
	if r.Failure.Status != "" {
		m["status"] = r.Failure.Status
	}
	return m
}

func fail(kind FailKind, msg string) Result {
	return Result{Failure: &Failure{Kind: kind, Message: msg}}
}
