package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pdf2word/internal/app"
	"pdf2word/internal/config"
	"pdf2word/internal/domain"
	"pdf2word/internal/http-server/handler/conversion/dto"
	conversion_uc "pdf2word/internal/usecase/conversion"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf>",
	Short: "Convert a local PDF file to DOCX",
	Long: `Convert runs a single conversion with the configured engine, applying the
same checks as the HTTP service. The document is written next to the input
unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		cfg, err := config.MustLoad()
		if err != nil {
			return err
		}

		return convertFile(cmd.Context(), cfg, args[0], out, &zlog.Logger)
	},
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "output path (default: <input dir>/<input stem>.docx)")

	rootCmd.AddCommand(convertCmd)
}

func convertFile(ctx context.Context, cfg *config.Config, input, out string, logger *zlog.Zerolog) error {
	req := dto.ConvertRequest{Filename: filepath.Base(input)}
	v := dto.NewValidator()
	if err := req.ValidateFilename(v); err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadSize+1))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	req.Size = len(data)
	if err := req.ValidateSize(v); err != nil {
		return err
	}

	usecase, _, err := app.NewConversion(cfg, logger)
	if err != nil {
		return err
	}

	artifact, err := usecase.Convert(ctx, &domain.Upload{Filename: req.Filename, Data: data})
	if err != nil {
		var convErr *conversion_uc.ConversionError
		if errors.As(err, &convErr) {
			return errors.New(convErr.Detail)
		}
		return err
	}

	if out == "" {
		out = filepath.Join(filepath.Dir(input), artifact.Filename)
	}

	if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info().Str("input", input).Str("output", out).Int("size", len(artifact.Data)).Msg("Document written")
	return nil
}
