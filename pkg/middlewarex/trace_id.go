package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"uk_numcheck/pkg/contextx"
)

const (
	headerNameTraceID = "X-Trace-Id"

	// Inbound ids longer than this are replaced, they end up in every log
	// line and in the support id of error replies.
	maxInboundTraceIDLen = 64
)

// TraceID adopts the caller's X-Trace-Id or mints one, and echoes it on the
// response so the caller can quote it back.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerNameTraceID)

		if traceID == "" || len(traceID) > maxInboundTraceIDLen {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))

		w.Header().Set(headerNameTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
