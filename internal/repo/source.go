package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pders01/git-pair/internal/git"
	"pkt.systems/pslog"
)

// DefaultMessageFile is the pending message file name inside a git directory
const DefaultMessageFile = "PAIR_EDITMSG"

// Repository is an open repository as reported by a Source
type Repository struct {
	Path string
	Sink MessageSink
}

// Source reports the repositories that are currently open
type Source interface {
	Repositories(ctx context.Context) ([]Repository, error)
}

// DirSource treats each configured directory as an open repository. Every
// directory is resolved to its work tree root; directories outside a git
// repository are skipped.
type DirSource struct {
	Dirs        []string
	MessageFile string
}

// Repositories resolves the configured directories, dropping duplicates
func (s DirSource) Repositories(ctx context.Context) ([]Repository, error) {
	log := pslog.Ctx(ctx)

	messageFile := s.MessageFile
	if messageFile == "" {
		messageFile = DefaultMessageFile
	}

	seen := make(map[string]bool)
	var repos []Repository
	for _, dir := range s.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		if !git.IsGitRepo(ctx, abs) {
			log.Warn("skipping directory outside a git repository", "dir", abs)
			continue
		}

		root, err := git.TopLevel(ctx, abs)
		if err != nil {
			return nil, err
		}
		if seen[root] {
			continue
		}
		seen[root] = true

		gitDir, err := git.GitDir(ctx, root)
		if err != nil {
			return nil, err
		}

		repos = append(repos, Repository{
			Path: root,
			Sink: FileSink{Path: filepath.Join(gitDir, messageFile)},
		})
	}
	return repos, nil
}
