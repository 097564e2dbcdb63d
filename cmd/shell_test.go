package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pders01/git-pair/internal/models"
	"github.com/pders01/git-pair/internal/testutil"
)

type scriptedPicker struct {
	answers []string
	titles  []string
	options [][]string
}

func (p *scriptedPicker) Choose(ctx context.Context, title string, options []string) (string, bool, error) {
	p.titles = append(p.titles, title)
	p.options = append(p.options, options)
	if len(p.answers) == 0 {
		return "", false, nil
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	return next, true, nil
}

type recordingNotifier struct {
	errors []string
	infos  []string
}

func (n *recordingNotifier) Error(msg string) {
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Info(msg string) {
	n.infos = append(n.infos, msg)
}

func newTestShell(t *testing.T, dirs []string, p *scriptedPicker, input string) (*shell, *recordingNotifier, *bytes.Buffer) {
	t.Helper()
	notify := &recordingNotifier{}
	out := &bytes.Buffer{}
	sh := newShell(newSession(dirs, p, notify), notify, strings.NewReader(input), out)
	return sh, notify, out
}

func TestShellAddAndAppend(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()
	repo.CommitAs("Alice", "alice@example.com", "Add feature")

	p := &scriptedPicker{answers: []string{"Alice <alice@example.com>"}}
	sh, notify, _ := newTestShell(t, []string{repo.Path}, p, "add\nappend\nquit\n")

	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if len(p.titles) != 1 || p.titles[0] != "Toggle pairing buddy" {
		t.Fatalf("expected a single buddy prompt, got %v", p.titles)
	}
	wantOptions := []string{"Alice <alice@example.com>", "Test User <test@example.com>"}
	if strings.Join(p.options[0], "|") != strings.Join(wantOptions, "|") {
		t.Errorf("options = %q, want %q", p.options[0], wantOptions)
	}

	got := repo.ReadFile(".git/PAIR_EDITMSG")
	if got != "\n\nCo-authored-by Alice <alice@example.com>" {
		t.Errorf("message file = %q", got)
	}
	if len(notify.errors) != 0 {
		t.Errorf("unexpected errors: %v", notify.errors)
	}
}

func TestShellAppendTwiceKeepsOneBlock(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()
	repo.CommitAs("Alice", "alice@example.com", "Add feature")

	p := &scriptedPicker{answers: []string{
		"Alice <alice@example.com>",
		"Test User <test@example.com>",
	}}
	sh, _, _ := newTestShell(t, []string{repo.Path}, p, "add\nappend\nadd\nappend\nappend\n")

	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	got := repo.ReadFile(".git/PAIR_EDITMSG")
	want := "\n\nCo-authored-by Alice <alice@example.com>\nCo-authored-by Test User <test@example.com>"
	if got != want {
		t.Errorf("message file = %q, want %q", got, want)
	}
	if !strings.HasPrefix(p.options[1][0], "✓Alice") {
		t.Errorf("selected buddy should be listed first with a marker, got %q", p.options[1])
	}
}

func TestShellAppendWithoutBuddies(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	sh, notify, _ := newTestShell(t, []string{repo.Path}, &scriptedPicker{}, "append\n")
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if len(notify.errors) != 1 || notify.errors[0] != "No pairing buddies selected." {
		t.Errorf("errors = %v", notify.errors)
	}
}

func TestShellNoRepositories(t *testing.T) {
	tmpDir := t.TempDir()

	p := &scriptedPicker{}
	sh, notify, _ := newTestShell(t, []string{tmpDir}, p, "add\n")
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if len(notify.errors) != 1 || notify.errors[0] != "No repositories found." {
		t.Errorf("errors = %v", notify.errors)
	}
	if len(p.titles) != 0 {
		t.Errorf("picker should not be shown, got %v", p.titles)
	}
}

func TestShellUnknownCommand(t *testing.T) {
	sh, notify, out := newTestShell(t, nil, &scriptedPicker{}, "\nbogus\nhelp\nquit\nadd\n")
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if len(notify.errors) != 1 || !strings.Contains(notify.errors[0], `unknown command "bogus"`) {
		t.Errorf("errors = %v", notify.errors)
	}
	if !strings.Contains(out.String(), "Commands:") {
		t.Error("help was not printed")
	}
}

func TestShellStatus(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()
	repo.CommitAs("Alice", "alice@example.com", "Add feature")

	p := &scriptedPicker{answers: []string{"Alice <alice@example.com>"}}
	sh, _, out := newTestShell(t, []string{repo.Path}, p, "")
	ctx := context.Background()

	if _, err := sh.handle(ctx, "add"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out.Reset()
	if _, err := sh.handle(ctx, "status --json"); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	var st models.Status
	if err := json.Unmarshal(out.Bytes(), &st); err != nil {
		t.Fatalf("status output is not JSON: %v\n%s", err, out.String())
	}
	if st.Current != repo.Path {
		t.Errorf("current = %q, want %q", st.Current, repo.Path)
	}
	if len(st.Selected) != 1 || st.Selected[0].Email != "alice@example.com" {
		t.Errorf("selected = %+v", st.Selected)
	}
	if st.Trailer != "Co-authored-by Alice <alice@example.com>" {
		t.Errorf("trailer = %q", st.Trailer)
	}

	out.Reset()
	if _, err := sh.handle(ctx, "status"); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out.String(), "Pairing with 1 buddy(s)") {
		t.Errorf("unexpected status output:\n%s", out.String())
	}

	if _, err := sh.handle(ctx, "status --bogus"); err == nil {
		t.Error("expected error for unknown status flag")
	}
}

func TestShellStop(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	p := &scriptedPicker{answers: []string{"Test User <test@example.com>"}}
	sh, notify, _ := newTestShell(t, []string{repo.Path}, p, "add\nstop\nappend\n")
	if err := sh.run(context.Background()); err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	if st := sh.session.Status(); st.Current != "" || len(st.Selected) != 0 {
		t.Errorf("stop left state behind: %+v", st)
	}
	if len(notify.errors) != 1 || notify.errors[0] != "No pairing buddies selected." {
		t.Errorf("errors = %v", notify.errors)
	}
}

func TestShellMessage(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	p := &scriptedPicker{answers: []string{"Test User <test@example.com>"}}
	sh, notify, out := newTestShell(t, []string{repo.Path}, p, "")
	ctx := context.Background()

	if _, err := sh.handle(ctx, "message"); err != nil {
		t.Fatalf("message failed: %v", err)
	}
	if len(notify.errors) != 1 {
		t.Errorf("expected an error without a current repository, got %v", notify.errors)
	}

	for _, line := range []string{"add", "append"} {
		if _, err := sh.handle(ctx, line); err != nil {
			t.Fatalf("%s failed: %v", line, err)
		}
	}
	out.Reset()
	if _, err := sh.handle(ctx, "message"); err != nil {
		t.Fatalf("message failed: %v", err)
	}
	if !strings.Contains(out.String(), "Co-authored-by Test User <test@example.com>") {
		t.Errorf("message output = %q", out.String())
	}
}

func TestShellCancelled(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	notify := &recordingNotifier{}
	sh := newShell(newSession(nil, &scriptedPicker{}, notify), notify, in, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sh.run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean exit on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not stop after cancel")
	}
}
