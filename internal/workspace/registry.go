package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pdf2word/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Registry tracks scratch workspaces that have been created but not yet removed.
// It is shared by all requests; every mutation happens under mu.
type Registry struct {
	root    string
	logger  *zlog.Zerolog
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewRegistry(root string, logger *zlog.Zerolog) *Registry {
	return &Registry{
		root:    root,
		logger:  logger,
		pending: make(map[string]struct{}),
	}
}

func (r *Registry) Root() string {
	return r.root
}

// Acquire creates a fresh, uniquely named workspace and registers it.
func (r *Registry) Acquire() (*Workspace, error) {
	if r.root != "" {
		if err := os.MkdirAll(r.root, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scratch root: %w", err)
		}
	}

	dir, err := os.MkdirTemp(r.root, domain.WorkspacePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	r.mu.Lock()
	r.pending[dir] = struct{}{}
	r.mu.Unlock()

	r.logger.Debug().Str("workspace", dir).Msg("Workspace acquired")

	return &Workspace{dir: dir, registry: r}, nil
}

func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	dirs := make([]string, 0, len(r.pending))
	for dir := range r.pending {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Drain removes every workspace still registered. It is called once the
// server has stopped accepting requests.
func (r *Registry) Drain() int {
	removed := 0
	for _, dir := range r.Pending() {
		if r.remove(dir) {
			removed++
		}
	}

	if removed > 0 {
		r.logger.Info().Int("removed", removed).Msg("Drained leftover workspaces")
	}
	return removed
}

// Sweep deletes workspace directories under the root left behind by an earlier
// process, i.e. older than olderThan and not registered here.
func (r *Registry) Sweep(olderThan time.Duration) (int, error) {
	root := r.root
	if root == "" {
		root = os.TempDir()
	}

	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list scratch root: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	swept := 0

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), domain.WorkspacePrefix) {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		if r.isPending(dir) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if err := os.RemoveAll(dir); err != nil {
			r.logger.Warn().Err(err).Str("workspace", dir).Msg("Failed to sweep stale workspace")
			continue
		}
		swept++
	}

	if swept > 0 {
		r.logger.Info().Int("swept", swept).Str("root", root).Msg("Swept stale workspaces")
	}
	return swept, nil
}

func (r *Registry) isPending(dir string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[dir]
	return ok
}

// remove deletes dir and deregisters it. A directory that could not be
// deleted stays registered so Drain can try again.
func (r *Registry) remove(dir string) bool {
	if err := os.RemoveAll(dir); err != nil {
		r.logger.Warn().Err(err).Str("workspace", dir).Msg("Failed to remove workspace")
		return false
	}

	r.mu.Lock()
	delete(r.pending, dir)
	r.mu.Unlock()

	r.logger.Debug().Str("workspace", dir).Msg("Workspace released")
	return true
}
