package git

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pders01/git-pair/internal/testutil"
)

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "drops empty lines",
			output: "Alice <a@x.com>\n\nBob <b@x.com>\n",
			want:   []string{"Alice <a@x.com>", "Bob <b@x.com>"},
		},
		{
			name:   "keeps first occurrence order",
			output: "Bob <b@x.com>\nAlice <a@x.com>\nBob <b@x.com>\nAlice <a@x.com>",
			want:   []string{"Bob <b@x.com>", "Alice <a@x.com>"},
		},
		{
			name:   "exact text equality only",
			output: "alice <a@x.com>\nAlice <a@x.com>",
			want:   []string{"alice <a@x.com>", "Alice <a@x.com>"},
		},
		{
			name:   "strips carriage returns",
			output: "Alice <a@x.com>\r\nAlice <a@x.com>\r\n",
			want:   []string{"Alice <a@x.com>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAuthors(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAuthors() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorsFromHistory(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	repo.CommitAs("Alice", "a@x.com", "first")
	repo.CommitAs("Bob", "b@x.com", "second")
	repo.CommitAs("Alice", "a@x.com", "third")

	got, err := Authors(context.Background(), repo.Path, 0)
	if err != nil {
		t.Fatalf("Authors() failed: %v", err)
	}

	want := []string{"Alice <a@x.com>", "Bob <b@x.com>", "Test User <test@example.com>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %q, want %q", got, want)
	}
}

func TestAuthorsMaxCount(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	repo.CommitAs("Alice", "a@x.com", "first")
	repo.CommitAs("Bob", "b@x.com", "second")

	got, err := Lister{MaxCount: 1}.Authors(context.Background(), repo.Path)
	if err != nil {
		t.Fatalf("Authors() failed: %v", err)
	}
	if len(got) != 1 || got[0] != "Bob <b@x.com>" {
		t.Errorf("expected only the newest author, got %q", got)
	}
}

func TestAuthorsWithoutCommits(t *testing.T) {
	repo := testutil.NewEmptyGitRepo(t)
	defer repo.Cleanup()

	if _, err := Authors(context.Background(), repo.Path, 0); err == nil {
		t.Error("expected error for repository without commits")
	}
}

func TestTopLevelAndGitDir(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()
	repo.CreateFile("sub/dir/file.txt", "x\n")

	ctx := context.Background()
	sub := filepath.Join(repo.Path, "sub", "dir")

	if !IsGitRepo(ctx, sub) {
		t.Fatal("expected subdirectory to be inside a git repo")
	}

	root, err := TopLevel(ctx, sub)
	if err != nil {
		t.Fatalf("TopLevel() failed: %v", err)
	}
	if root != repo.Path {
		t.Errorf("TopLevel() = %s, want %s", root, repo.Path)
	}

	gitDir, err := GitDir(ctx, sub)
	if err != nil {
		t.Fatalf("GitDir() failed: %v", err)
	}
	if gitDir != repo.GitDir() {
		t.Errorf("GitDir() = %s, want %s", gitDir, repo.GitDir())
	}
}

func TestIsGitRepoOutsideRepo(t *testing.T) {
	if IsGitRepo(context.Background(), t.TempDir()) {
		t.Error("expected plain temp dir not to be a git repo")
	}
}
