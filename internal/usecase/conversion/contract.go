package conversion

import "pdf2word/internal/workspace"

type converter interface {
	Name() string
	Convert(sourcePath, targetPath string) error
}

type workspaceProvider interface {
	Acquire() (*workspace.Workspace, error)
}
