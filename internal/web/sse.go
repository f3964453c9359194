package web

import (
	"net/http"
	"time"

	"badminqueue/internal/session"
)

var heartbeatInterval = 15 * time.Second

// SSEHandler sends an "update" event on connect and after every change.
// Clients refetch what they show.
func SSEHandler(b *session.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		_, ch, unsubscribe := b.Subscribe()
		defer unsubscribe()

		// initial ping
		_, _ = w.Write([]byte("event: update\ndata: 1\n\n"))
		flusher.Flush()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				_, _ = w.Write([]byte("event: update\ndata: 1\n\n"))
				flusher.Flush()
			case <-ticker.C:
				_, _ = w.Write([]byte(": heartbeat\n\n"))
				flusher.Flush()
			}
		}
	}
}
