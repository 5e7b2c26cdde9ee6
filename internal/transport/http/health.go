package http

import "net/http"

// HealthHandler answers liveness probes. It deliberately checks nothing
// downstream; readiness of the database is proven at startup.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
