package conversion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"pdf2word/internal/domain"
	"pdf2word/internal/http-server/handler/conversion/dto"
	conversion_uc "pdf2word/internal/usecase/conversion"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	multipartOverhead = 1 << 20
	formField         = "file"
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

type ConversionHandler struct {
	usecase  conversionUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewConversionHandler(usecase conversionUsecase, logger *zlog.Zerolog) *ConversionHandler {
	return &ConversionHandler{
		usecase:  usecase,
		validate: dto.NewValidator(),
		logger:   logger,
	}
}

func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadSize+multipartOverhead)

	part, err := h.filePart(r)
	if err != nil {
		h.handleRequestError(w, err, "")
		return
	}
	defer part.Close()

	req := dto.ConvertRequest{Filename: part.FileName()}
	if err := req.ValidateFilename(h.validate); err != nil {
		h.handleRequestError(w, err, req.Filename)
		return
	}

	data, err := io.ReadAll(io.LimitReader(part, domain.MaxUploadSize+1))
	if err != nil {
		if isTooLarge(err) {
			err = domain.ErrFileTooLarge
		} else {
			err = fmt.Errorf("%w: %v", ErrReadUpload, err)
		}
		h.handleRequestError(w, err, req.Filename)
		return
	}

	req.Size = len(data)
	if err := req.ValidateSize(h.validate); err != nil {
		h.handleRequestError(w, err, req.Filename)
		return
	}

	artifact, err := h.usecase.Convert(r.Context(), &domain.Upload{
		Filename: req.Filename,
		Data:     data,
	})
	if err != nil {
		h.handleConversionError(w, err, req.Filename)
		return
	}

	w.Header().Set("Content-Type", artifact.MediaType)
	w.Header().Set("Content-Disposition", contentDisposition(artifact.Filename))
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(artifact.Data); err != nil {
		h.logger.Error().Err(err).Str("filename", artifact.Filename).Msg("Failed to write document")
		return
	}

	h.logger.Info().
		Str("filename", req.Filename).
		Str("output", artifact.Filename).
		Int("size", len(artifact.Data)).
		Str("state", string(domain.StateDelivered)).
		Msg("Document delivered")
}

// filePart streams the multipart body up to the upload field, so its
// filename is checked before the payload is read.
func (h *ConversionHandler) filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read multipart form")
		return nil, domain.ErrNoFilename
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoFilename
		}
		if err != nil {
			if isTooLarge(err) {
				return nil, domain.ErrFileTooLarge
			}
			h.logger.Warn().Err(err).Msg("Failed to read multipart form")
			return nil, domain.ErrNoFilename
		}

		if part.FormName() == formField {
			return part, nil
		}
		part.Close()
	}
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge)
}

func contentDisposition(filename string) string {
	return `attachment; filename="` + quoteEscaper.Replace(filename) + `"`
}

func (h *ConversionHandler) handleRequestError(w http.ResponseWriter, err error, filename string) {
	switch {
	case errors.Is(err, domain.ErrNoFilename),
		errors.Is(err, domain.ErrUnsupportedType),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrFileTooLarge):
		h.logger.Warn().Str("filename", filename).Str("reason", err.Error()).Msg("Upload rejected")
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Warn().Err(err).Str("filename", filename).Msg("Failed to read upload")
		h.respondError(w, http.StatusBadRequest, "Invalid upload")
	}
}

func (h *ConversionHandler) handleConversionError(w http.ResponseWriter, err error, filename string) {
	var convErr *conversion_uc.ConversionError
	if errors.As(err, &convErr) {
		h.respondError(w, http.StatusInternalServerError, convErr.Detail)
		return
	}

	h.logger.Error().Err(err).Str("filename", filename).Msg("Conversion failed")
	h.respondError(w, http.StatusInternalServerError, "Conversion failed: "+err.Error())
}

func (h *ConversionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Interface("data", data).Msg("Failed to encode response")
	}
}

func (h *ConversionHandler) respondError(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, dto.ErrorResponse{Detail: detail})
}
