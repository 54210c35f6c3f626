package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"pdf2word/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

const (
	profileDirName  = ".soffice-profile"
	docxFilter      = "docx:MS Word 2007 XML"
	pdfImportFilter = "writer_pdf_import"
)

var sofficeCandidates = []string{
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/usr/lib/libreoffice/program/soffice",
	"/opt/homebrew/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
}

var sofficeNames = []string{"soffice", "libreoffice"}

type executor interface {
	LookPath(file string) (string, error)
	Stat(name string) (fs.FileInfo, error)
	CombinedOutput(name string, args ...string) ([]byte, error)
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// LibreOffice converts PDFs by running soffice headless with the Writer PDF
// import filter. Each call uses its own user profile inside the target
// directory so concurrent conversions do not contend for the profile lock.
type LibreOffice struct {
	bin    string
	exec   executor
	logger *zlog.Zerolog
}

func NewLibreOffice(binPath string, logger *zlog.Zerolog) (*LibreOffice, error) {
	return newLibreOffice(binPath, osExecutor{}, logger)
}

func newLibreOffice(binPath string, exec executor, logger *zlog.Zerolog) (*LibreOffice, error) {
	bin, err := resolveSoffice(binPath, exec)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("engine", "libreoffice").Str("bin", bin).Msg("Conversion engine ready")

	return &LibreOffice{
		bin:    bin,
		exec:   exec,
		logger: logger,
	}, nil
}

func resolveSoffice(binPath string, exec executor) (string, error) {
	if binPath != "" {
		if _, err := exec.Stat(binPath); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, binPath, err)
		}
		return binPath, nil
	}

	for _, candidate := range sofficeCandidates {
		if _, err := exec.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	for _, name := range sofficeNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: soffice not found", ErrEngineUnavailable)
}

func (l *LibreOffice) Name() string { return "libreoffice" }

func (l *LibreOffice) Convert(sourcePath, targetPath string) error {
	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}

	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("failed to resolve target path: %w", err)
	}

	outDir := filepath.Dir(absTarget)
	profileDir := filepath.Join(outDir, profileDirName)
	defer os.RemoveAll(profileDir)

	args := []string{
		"-env:UserInstallation=file://" + filepath.ToSlash(profileDir),
		"--headless",
		"--norestore",
		"--infilter=" + pdfImportFilter,
		"--convert-to", docxFilter,
		"--outdir", outDir,
		absSource,
	}

	l.logger.Debug().Str("bin", l.bin).Strs("args", args).Msg("Running soffice")

	output, err := l.exec.CombinedOutput(l.bin, args...)
	if err != nil {
		return fmt.Errorf("libreoffice failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}

	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(absSource), filepath.Ext(absSource))+domain.TargetExtension)
	if produced == absTarget {
		return nil
	}

	if err := os.Rename(produced, absTarget); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn().Str("output", strings.TrimSpace(string(output))).Msg("soffice exited without producing a document")
			return nil
		}
		return fmt.Errorf("failed to move converted document: %w", err)
	}

	return nil
}
