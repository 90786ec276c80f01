package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, h *TranscriptionHandler, ratePerMinute int) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- распознавание ---
		if ratePerMinute > 0 {
			pr.With(httprate.LimitByIP(ratePerMinute, time.Minute)).Post("/audio-to-text", h.Convert)
		} else {
			pr.Post("/audio-to-text", h.Convert)
		}

		// --- журнал ---
		pr.Get("/transcriptions", h.List)
	})
}
