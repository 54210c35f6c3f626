package engine

import (
	"fmt"

	"pdf2word/internal/config"

	"github.com/wb-go/wbf/zlog"
)

// Engine turns the source document at sourcePath into a target document at
// targetPath. Implementations run synchronously.
type Engine interface {
	Name() string
	Convert(sourcePath, targetPath string) error
}

func New(cfg config.ConversionConfig, logger *zlog.Zerolog) (Engine, error) {
	switch cfg.Engine {
	case config.EngineLibreOffice, "":
		return NewLibreOffice(cfg.SofficePath, logger)
	case config.EngineText:
		return NewText(logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.Engine)
	}
}
