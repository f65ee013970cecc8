// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d and answers with a 503 JSON
// error if the handler has not produced a response by then. Writes from a
// handler that finishes late are discarded rather than corrupting the
// already-sent error.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if gw.abandon() {
					writeError(w, http.StatusServiceUnavailable, "timeout", "Request timed out")
				}
			}
		})
	}
}

// guardedWriter lets either the handler or the timeout path own the
// response, never both. Once the timeout path has sent its error, handler
// writes are silently dropped.
type guardedWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	abandoned   bool
}

// abandon hands the response to the timeout path. It reports false when the
// handler already started writing, in which case the response is left alone.
func (gw *guardedWriter) abandon() bool {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.wroteHeader {
		return false
	}
	gw.abandoned = true
	return true
}

func (gw *guardedWriter) WriteHeader(code int) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.abandoned || gw.wroteHeader {
		return
	}
	gw.wroteHeader = true
	gw.ResponseWriter.WriteHeader(code)
}

func (gw *guardedWriter) Write(b []byte) (int, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.abandoned {
		return len(b), nil
	}
	if !gw.wroteHeader {
		gw.wroteHeader = true
		gw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return gw.ResponseWriter.Write(b)
}
