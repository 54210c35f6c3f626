package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

type mockExecutor struct {
	existing   map[string]bool
	onPath     map[string]string
	outputFunc func(name string, args []string) ([]byte, error)
	calls      [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if path, ok := m.onPath[file]; ok {
		return path, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Stat(name string) (fs.FileInfo, error) {
	if m.existing[name] {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func (m *mockExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.outputFunc != nil {
		return m.outputFunc(name, args)
	}
	return nil, nil
}

func testLogger() *zlog.Zerolog {
	zlog.Init()
	return &zlog.Logger
}

func TestResolveSoffice(t *testing.T) {
	tests := []struct {
		name    string
		binPath string
		exec    *mockExecutor
		want    string
		wantErr bool
	}{
		{
			name:    "explicit path",
			binPath: "/srv/lo/soffice",
			exec:    &mockExecutor{existing: map[string]bool{"/srv/lo/soffice": true, "/usr/bin/soffice": true}},
			want:    "/srv/lo/soffice",
		},
		{
			name:    "explicit path missing",
			binPath: "/srv/lo/soffice",
			exec:    &mockExecutor{existing: map[string]bool{"/usr/bin/soffice": true}},
			wantErr: true,
		},
		{
			name: "well-known location",
			exec: &mockExecutor{existing: map[string]bool{"/usr/bin/libreoffice": true}},
			want: "/usr/bin/libreoffice",
		},
		{
			name: "falls back to PATH",
			exec: &mockExecutor{onPath: map[string]string{"libreoffice": "/nix/store/bin/libreoffice"}},
			want: "/nix/store/bin/libreoffice",
		},
		{
			name:    "nothing installed",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSoffice(tt.binPath, tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrEngineUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLibreOfficeConvert(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "ab12cd34.pdf")
	target := filepath.Join(dir, "ab12cd34.docx")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-1.4"), 0o600))

	exec := &mockExecutor{
		existing: map[string]bool{"/usr/bin/soffice": true},
		outputFunc: func(name string, args []string) ([]byte, error) {
			outDir := args[len(args)-2]
			return []byte("convert ok"), os.WriteFile(filepath.Join(outDir, "ab12cd34.docx"), []byte("docx"), 0o600)
		},
	}

	lo, err := newLibreOffice("", exec, testLogger())
	require.NoError(t, err)
	require.NoError(t, lo.Convert(source, target))

	assert.FileExists(t, target)
	require.Len(t, exec.calls, 1)

	call := exec.calls[0]
	assert.Equal(t, "/usr/bin/soffice", call[0])
	assert.Contains(t, call, "--headless")
	assert.Contains(t, call, "--infilter=writer_pdf_import")
	assert.Contains(t, call, docxFilter)
	assert.Equal(t, source, call[len(call)-1])
	assert.True(t, strings.HasPrefix(call[1], "-env:UserInstallation=file://"))
	assert.NoDirExists(t, filepath.Join(dir, profileDirName))
}

func TestLibreOfficeConvert_RenamesOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.pdf")
	target := filepath.Join(dir, "result.docx")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-1.4"), 0o600))

	exec := &mockExecutor{
		existing: map[string]bool{"/usr/bin/soffice": true},
		outputFunc: func(name string, args []string) ([]byte, error) {
			return nil, os.WriteFile(filepath.Join(dir, "input.docx"), []byte("docx"), 0o600)
		},
	}

	lo, err := newLibreOffice("", exec, testLogger())
	require.NoError(t, err)
	require.NoError(t, lo.Convert(source, target))

	assert.FileExists(t, target)
	assert.NoFileExists(t, filepath.Join(dir, "input.docx"))
}

func TestLibreOfficeConvert_NoOutputIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.pdf")
	target := filepath.Join(dir, "result.docx")

	exec := &mockExecutor{existing: map[string]bool{"/usr/bin/soffice": true}}

	lo, err := newLibreOffice("", exec, testLogger())
	require.NoError(t, err)
	require.NoError(t, lo.Convert(source, target))
	assert.NoFileExists(t, target)
}

func TestLibreOfficeConvert_Failure(t *testing.T) {
	dir := t.TempDir()

	exec := &mockExecutor{
		existing: map[string]bool{"/usr/bin/soffice": true},
		outputFunc: func(string, []string) ([]byte, error) {
			return []byte("Error: source file could not be loaded\n"), errors.New("exit status 1")
		},
	}

	lo, err := newLibreOffice("", exec, testLogger())
	require.NoError(t, err)

	err = lo.Convert(filepath.Join(dir, "a.pdf"), filepath.Join(dir, "a.docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libreoffice failed")
	assert.Contains(t, err.Error(), "source file could not be loaded")
}
