package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestIDHeader is the header a client can read back to correlate its
// request with a gateway log line.
const requestIDHeader = "X-Request-Id"

// Logger assigns each request a uuid request id, echoes it back on
// requestIDHeader, and logs method/URI/latency/request id, adapted from
// the wallet server's request logger.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()
		w.Header().Set(requestIDHeader, reqID)
		next.ServeHTTP(w, r)
		logrus.Infof("%s %s %s request_id=%s", r.Method, r.RequestURI, time.Since(start), reqID)
	})
}
