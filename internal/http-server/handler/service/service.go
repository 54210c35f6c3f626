package service

import (
	"encoding/json"
	"net/http"

	"pdf2word/internal/http-server/handler/service/dto"

	"github.com/wb-go/wbf/zlog"
)

const Version = "1.0.0"

type ServiceHandler struct {
	logger *zlog.Zerolog
}

func NewServiceHandler(logger *zlog.Zerolog) *ServiceHandler {
	return &ServiceHandler{logger: logger}
}

func (h *ServiceHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.RootResponse{
		Status:  "ok",
		Message: "PDF to Word API is running",
		Version: Version,
		Endpoints: dto.Endpoints{
			Health:  "/health",
			Convert: "/convert (POST)",
		},
	})
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

func (h *ServiceHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
