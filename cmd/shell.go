package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pders01/git-pair/internal/logx"
	"github.com/pders01/git-pair/internal/pairing"
	"github.com/spf13/pflag"
)

const shellPrompt = "pair> "

const shellHelp = `Commands:
  add              toggle a pairing buddy from the repository history
  append           write the Co-authored-by trailers into the message file
  stop             forget all buddies and the current repository
  repo             choose the repository to work with
  status [--json|--toon]
                   show the current repository and buddies
  message          print the pending message of the current repository
  help             show this help
  quit             end the session`

// shell runs pairing flows one input line at a time. A flow runs to
// completion before the next line is read.
type shell struct {
	session *pairing.Session
	notify  pairing.Notifier
	in      *bufio.Scanner
	out     io.Writer
}

func newShell(session *pairing.Session, notify pairing.Notifier, in io.Reader, out io.Writer) *shell {
	return &shell{
		session: session,
		notify:  notify,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

type scanResult struct {
	line string
	ok   bool
	err  error
}

// run reads commands until quit, end of input or cancellation
func (sh *shell) run(ctx context.Context) error {
	log := logx.WithSession(logx.Ctx(ctx), sh.session.ID())
	log.Info("pairing session started")
	defer log.Info("pairing session ended")

	fmt.Fprintln(sh.out, `Pairing session started. Type "help" for commands.`)
	for {
		fmt.Fprint(sh.out, shellPrompt)

		line, ok, err := sh.readLine(ctx)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}
		if !ok {
			fmt.Fprintln(sh.out)
			return nil
		}

		quit, err := sh.handle(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Warn("shell command failed", "err", err)
			sh.notify.Error(err.Error())
		}
		if quit {
			return nil
		}
	}
}

// readLine waits for the next input line. The scanner is only read while
// no flow is running, so pickers own the terminal input in between.
func (sh *shell) readLine(ctx context.Context) (string, bool, error) {
	res := make(chan scanResult, 1)
	go func() {
		ok := sh.in.Scan()
		res <- scanResult{line: sh.in.Text(), ok: ok, err: sh.in.Err()}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-res:
		return r.line, r.ok, r.err
	}
}

// handle dispatches one input line and reports whether the session should end
func (sh *shell) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	logx.WithSession(logx.Ctx(ctx), sh.session.ID()).Debug("shell command", "command", name, "args", len(args))

	switch name {
	case "add", "start":
		return false, sh.session.AddBuddy(ctx)
	case "append":
		return false, sh.session.AppendPairing(ctx)
	case "stop":
		sh.session.Stop(ctx)
		sh.notify.Info("Pairing stopped.")
		return false, nil
	case "repo":
		return false, sh.session.SelectRepo(ctx)
	case "status":
		return false, sh.status(args)
	case "message":
		return false, sh.message()
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try \"help\"", name)
	}
}

func (sh *shell) status(args []string) error {
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "Output as JSON")
	asToon := fs.Bool("toon", false, "Output in LLM-friendly toon format")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("status: %w", err)
	}

	st := sh.session.Status()
	if done, err := writeStructured(sh.out, st, *asJSON, *asToon); done {
		return err
	}

	current := st.Current
	if current == "" {
		current = "(none)"
	}
	fmt.Fprintf(sh.out, "Repository: %s\n", current)
	if len(st.Known) > 1 {
		fmt.Fprintf(sh.out, "Known:      %s\n", strings.Join(st.Known, ", "))
	}
	if len(st.Selected) == 0 {
		fmt.Fprintln(sh.out, "Pairing with nobody")
		return nil
	}
	fmt.Fprintf(sh.out, "Pairing with %d buddy(s):\n", len(st.Selected))
	for _, id := range st.Selected {
		fmt.Fprintf(sh.out, "  %s\n", id.Raw)
	}
	return nil
}

func (sh *shell) message() error {
	h, ok := sh.session.Registry().Current()
	if !ok {
		sh.notify.Error("No repository selected.")
		return nil
	}
	text, err := h.Sink().Text()
	if err != nil {
		return fmt.Errorf("failed to read message of %s: %w", h.Path(), err)
	}
	if text == "" {
		fmt.Fprintln(sh.out, "(empty message)")
		return nil
	}
	fmt.Fprintln(sh.out, text)
	return nil
}
