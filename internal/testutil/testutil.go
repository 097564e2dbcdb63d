package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TempGitRepo is a throwaway git repository for tests
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a repository whose only commit is authored by
// "Test User <test@example.com>"
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	repo := NewEmptyGitRepo(t)
	repo.CreateFile("README.md", "# Test Repository\n")
	repo.Commit("Initial commit")
	return repo
}

// NewEmptyGitRepo creates an initialized repository without any commits
func NewEmptyGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "pair-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	// macOS hands out /var paths that git reports as /private/var
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	repo := &TempGitRepo{Path: tmpDir, T: t}

	setup := [][]string{
		{"init"},
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range setup {
		if err := repo.git(nil, args...); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	return repo
}

// Cleanup removes the temporary git repository
func (r *TempGitRepo) Cleanup() {
	r.T.Helper()
	if err := os.RemoveAll(r.Path); err != nil {
		r.T.Errorf("failed to cleanup temp repo: %v", err)
	}
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// Commit stages and commits all changes as the configured user
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()

	if err := r.git(nil, "add", "."); err != nil {
		r.T.Fatalf("failed to stage files: %v", err)
	}
	if err := r.git(nil, "commit", "--allow-empty", "-m", message); err != nil {
		r.T.Fatalf("failed to commit: %v", err)
	}
}

// CommitAs records an empty commit authored by name and email
func (r *TempGitRepo) CommitAs(name, email, message string) {
	r.T.Helper()

	env := []string{
		"GIT_AUTHOR_NAME=" + name,
		"GIT_AUTHOR_EMAIL=" + email,
	}
	if err := r.git(env, "commit", "--allow-empty", "-m", message); err != nil {
		r.T.Fatalf("failed to commit as %s: %v", name, err)
	}
}

// GitDir returns the repository's .git directory
func (r *TempGitRepo) GitDir() string {
	return filepath.Join(r.Path, ".git")
}

// ReadFile returns the content of a file relative to the repository root,
// or "" when it does not exist
func (r *TempGitRepo) ReadFile(name string) string {
	r.T.Helper()

	data, err := os.ReadFile(filepath.Join(r.Path, name))
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		r.T.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

func (r *TempGitRepo) git(env []string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.Run()
}
