package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"flight-tracker/flightboard/internal/constants"
	reqctx "flight-tracker/flightboard/internal/context"
	"flight-tracker/flightboard/internal/logging"
)

// Recoverer turns a panic in any handler into a 500 JSON error. The panic
// value is only exposed to clients outside production.
func Recoverer(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logging.WithRequest(reqctx.GetRequestID(r.Context()), r.Method, r.URL.Path).
					Errorw("Recovered from panic", "panic", rec, "stack", string(debug.Stack()))

				message := constants.MsgSomethingWentWrong
				if !production {
					message = fmt.Sprint(rec)
				}
				writeError(w, http.StatusInternalServerError, constants.ErrInternalServer, message)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
