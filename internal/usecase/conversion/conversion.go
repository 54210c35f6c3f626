package conversion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf2word/internal/domain"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type ConversionUsecase struct {
	engine     converter
	workspaces workspaceProvider
	logger     *zlog.Zerolog
}

func NewConversionUsecase(engine converter, workspaces workspaceProvider, logger *zlog.Zerolog) *ConversionUsecase {
	return &ConversionUsecase{
		engine:     engine,
		workspaces: workspaces,
		logger:     logger,
	}
}

// Convert stages the upload in a fresh workspace, runs the engine and returns
// the produced document. The workspace is released on every return path.
func (c *ConversionUsecase) Convert(ctx context.Context, upload *domain.Upload) (*domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.fail(domain.StateValidated, "", err)
	}

	ws, err := c.workspaces.Acquire()
	if err != nil {
		return nil, c.fail(domain.StateValidated, "", fmt.Errorf("failed to acquire workspace: %w", err))
	}
	defer ws.Release()

	fileID := uuid.New().String()[:domain.FileIDLength]
	sourcePath := ws.Path(fileID + domain.SourceExtension)
	targetPath := ws.Path(fileID + domain.TargetExtension)

	logger := c.logger.With().
		Str("file_id", fileID).
		Str("filename", upload.Filename).
		Str("engine", c.engine.Name()).
		Logger()

	if err := os.WriteFile(sourcePath, upload.Data, 0o600); err != nil {
		return nil, c.fail(domain.StateValidated, ws.Dir(), fmt.Errorf("failed to stage upload: %w", err))
	}
	logger.Debug().Str("state", string(domain.StateStaged)).Int("size", len(upload.Data)).Msg("Upload staged")

	start := time.Now()
	if err := c.engine.Convert(sourcePath, targetPath); err != nil {
		return nil, c.fail(domain.StateStaged, ws.Dir(), err)
	}

	if _, err := os.Stat(targetPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, c.fail(domain.StateStaged, ws.Dir(), ErrOutputNotProduced)
		}
		return nil, c.fail(domain.StateStaged, ws.Dir(), fmt.Errorf("failed to stat output: %w", err))
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		return nil, c.fail(domain.StateConverted, ws.Dir(), fmt.Errorf("failed to read output: %w", err))
	}

	logger.Info().
		Str("state", string(domain.StateConverted)).
		Int("output_size", len(data)).
		Dur("took", time.Since(start)).
		Msg("Document converted")

	return &domain.Artifact{
		Filename:  domain.OutputFilename(upload.Filename),
		MediaType: domain.TargetMediaType,
		Data:      data,
	}, nil
}

func (c *ConversionUsecase) fail(state domain.ConversionState, dir string, err error) error {
	detail := ErrOutputNotProduced.Error()
	if !errors.Is(err, ErrOutputNotProduced) {
		detail = "Conversion failed: " + redact(err.Error(), dir)
	}

	c.logger.Error().
		Err(err).
		Str("state", string(domain.StateFailed)).
		Str("failed_after", string(state)).
		Msg("Conversion failed")

	return &ConversionError{State: state, Detail: detail, Err: err}
}

func redact(message, dir string) string {
	if dir == "" {
		return message
	}
	message = strings.ReplaceAll(message, dir+string(filepath.Separator), "")
	return strings.ReplaceAll(message, dir, "")
}
