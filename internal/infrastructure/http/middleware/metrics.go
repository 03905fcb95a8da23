package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ActiveRequestsMiddleware tracks in-flight HTTP requests with an
// UpDownCounter.
func ActiveRequestsMiddleware(meter metric.Meter) func(next http.Handler) http.Handler {
	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP server requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		// Metric creation failed; serve without instrumentation.
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Increment lazily on first write so the chi route pattern,
			// resolved during routing, makes it into the attributes.
			wrapper := &activeRequestWriter{
				ResponseWriter: w,
				request:        r,
				counter:        activeRequests,
			}

			next.ServeHTTP(wrapper, r)
			wrapper.finish()
		})
	}
}

// activeRequestWriter increments the active-request counter on the first
// write and guarantees a matching decrement when the request finishes.
type activeRequestWriter struct {
	http.ResponseWriter
	request     *http.Request
	counter     metric.Int64UpDownCounter
	incremented bool
	finished    bool
}

func (w *activeRequestWriter) WriteHeader(statusCode int) {
	w.increment()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *activeRequestWriter) Write(b []byte) (int, error) {
	w.increment()
	return w.ResponseWriter.Write(b)
}

func (w *activeRequestWriter) attrs() metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("http.request.method", w.request.Method),
		attribute.String("http.route", routePattern(w.request)),
		attribute.String("server.address", w.request.Host),
	)
}

func (w *activeRequestWriter) increment() {
	if w.incremented {
		return
	}
	w.incremented = true
	w.counter.Add(w.request.Context(), 1, w.attrs())
}

func (w *activeRequestWriter) finish() {
	if w.finished {
		return
	}
	w.finished = true

	// Handlers that never wrote still count as one request.
	w.increment()
	w.counter.Add(w.request.Context(), -1, w.attrs())
}

// DurationMillisecondsMiddleware records request duration in
// milliseconds, alongside the seconds-based histogram otelhttp emits.
func DurationMillisecondsMiddleware(meter metric.Meter) func(next http.Handler) http.Handler {
	durationHistogram, err := meter.Float64Histogram(
		"http.server.request.duration.ms",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			durationHistogram.Record(r.Context(), float64(time.Since(start).Milliseconds()),
				metric.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("http.route", routePattern(r)),
					attribute.Int("http.response.status_code", rw.statusCode),
					attribute.String("server.address", r.Host),
				),
			)
		})
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
