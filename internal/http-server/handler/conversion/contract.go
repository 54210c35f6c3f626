package conversion

import (
	"context"

	"pdf2word/internal/domain"
)

type conversionUsecase interface {
	Convert(ctx context.Context, upload *domain.Upload) (*domain.Artifact, error)
}
