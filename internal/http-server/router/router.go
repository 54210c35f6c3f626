package router

import (
	"net/http"

	"pdf2word/internal/http-server/handler/conversion"
	"pdf2word/internal/http-server/handler/service"
	"pdf2word/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	ConversionHandler *conversion.ConversionHandler
	ServiceHandler    *service.ServiceHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware())

	r.Get("/", h.ServiceHandler.Root)
	r.Get("/health", h.ServiceHandler.Health)
	r.Post("/convert", h.ConversionHandler.Convert)

	return r
}
