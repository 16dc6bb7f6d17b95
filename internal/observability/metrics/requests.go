package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/zeroco/company-console/internal/observability/errors"
	"github.com/zeroco/company-console/internal/observability/statsd"
)

// Outcome constants for metric tagging.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metric names emitted for backend calls.
const (
	APIRequest         = "api.request"
	APIRequestDuration = "api.request.duration"
)

// APIRequestMetric captures one backend call for metric emission.
type APIRequestMetric struct {
	Method string
	// Route is the path template (for example "/employees/{id}") to keep tag cardinality low.
	Route    string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPIRequest emits the request counter and, when measured, its duration.
func EmitAPIRequest(sink statsd.Sink, in APIRequestMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method":       in.Method,
		"route":        in.Route,
		"status_class": StatusClass(in.Status),
		"outcome":      OutcomeOK,
	}
	if in.Err != nil {
		tags["outcome"] = OutcomeError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(APIRequest, 1, tags)

	if in.Duration > 0 {
		sink.Timing(APIRequestDuration, in.Duration, CloneTags(tags))
	}
}

// StatusClass buckets an HTTP status as "2xx", "4xx", ... or "none" when no response arrived.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
