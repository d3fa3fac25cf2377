package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// RouteMiddleware wraps a single route's handler func.
type RouteMiddleware func(next http.HandlerFunc) http.HandlerFunc

// SetRouteChain applies route middlewares right-to-left, so the first
// middleware listed is the outermost.
func SetRouteChain(handler http.HandlerFunc, middlewares ...RouteMiddleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// SetChain applies handler-level middlewares right-to-left.
func SetChain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// HTTPResponseTraceInjection copies the active trace id onto the response
// so clients can quote it in support tickets.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := trace.SpanContextFromContext(r.Context())
		if sc.HasTraceID() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}

		next.ServeHTTP(w, r)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	rr.body.Write(p)
	return rr.ResponseWriter.Write(p)
}

type HTTPRequestLogger struct {
	logger         *logrus.Logger
	debug          bool
	errorThreshold int
}

// NewHTTPRequestLogger logs every request's outcome; bodies are only logged
// when debug is on or the response status reaches the error threshold.
func NewHTTPRequestLogger(logger *logrus.Logger, debug bool, errorThreshold int) *HTTPRequestLogger {
	return &HTTPRequestLogger{
		logger:         logger,
		debug:          debug,
		errorThreshold: errorThreshold,
	}
}

func (l *HTTPRequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var reqBody []byte
		if l.debug && r.Body != nil {
			reqBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rr, r)

		fields := logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rr.statusCode,
			"duration": time.Since(start).String(),
		}

		if l.debug {
			fields["request_body"] = string(reqBody)
		}
		if l.debug || rr.statusCode >= l.errorThreshold {
			fields["response_body"] = rr.body.String()
		}

		entry := l.logger.WithContext(r.Context()).WithFields(fields)
		if rr.statusCode >= l.errorThreshold {
			entry.Error()
			return
		}
		entry.Info()
	})
}
