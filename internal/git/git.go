package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"pkt.systems/pslog"
)

// authorFormat renders one commit author per line as "Name <email>".
const authorFormat = "%an <%ae>"

// Available checks that a git binary can be found on PATH
func Available() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git executable not found: %w", err)
	}
	return nil
}

// run executes git in dir and returns its stdout
func run(ctx context.Context, dir string, args ...string) (string, error) {
	log := pslog.Ctx(ctx).With("dir", dir, "args", strings.Join(args, " "))
	log.Debug("git run start")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		log.Warn("git run failed", "err", err, "stderr", stderr)
		if stderr != "" {
			return string(output), fmt.Errorf("git %s failed: %w (%s)", args[0], err, stderr)
		}
		return string(output), fmt.Errorf("git %s failed: %w", args[0], err)
	}

	log.Debug("git run ok", "output_len", len(output))
	return string(output), nil
}

// IsGitRepo checks if dir is inside a git work tree
func IsGitRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// TopLevel returns the root of the work tree containing dir
func TopLevel(ctx context.Context, dir string) (string, error) {
	output, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository root: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// GitDir returns the absolute path of the git directory for dir
func GitDir(ctx context.Context, dir string) (string, error) {
	output, err := run(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to resolve git directory: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// Authors returns the distinct "Name <email>" authors of the history
// reachable from HEAD, in log order. maxCount limits how many commits are
// scanned; zero scans everything.
func Authors(ctx context.Context, dir string, maxCount int) ([]string, error) {
	args := []string{"log", "--pretty=format:" + authorFormat}
	if maxCount > 0 {
		args = append(args, "--max-count="+strconv.Itoa(maxCount))
	}

	output, err := run(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return ParseAuthors(output), nil
}

// ParseAuthors splits git log output into identities, dropping empty lines
// and repeats while keeping first-seen order.
func ParseAuthors(output string) []string {
	seen := make(map[string]bool)
	var authors []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		authors = append(authors, line)
	}
	return authors
}

// Lister lists collaborator identities from a repository's commit log
type Lister struct {
	MaxCount int
}

// Authors implements the history lister used by a pairing session
func (l Lister) Authors(ctx context.Context, path string) ([]string, error) {
	return Authors(ctx, path, l.MaxCount)
}
