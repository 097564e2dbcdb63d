package pairing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pders01/git-pair/internal/logx"
	"github.com/pders01/git-pair/internal/models"
	"github.com/pders01/git-pair/internal/repo"
	"pkt.systems/pslog"
)

// DefaultMarker prefixes the labels of already selected candidates
const DefaultMarker = "✓"

// User-visible messages for flows that stop early
const (
	MsgNoSelection    = "No pairing buddies selected."
	MsgNoRepositories = "No repositories found."
)

// HistoryLister returns "Name <email>" identities from a repository's history
type HistoryLister interface {
	Authors(ctx context.Context, path string) ([]string, error)
}

// Picker asks the user to choose one option; ok is false on cancellation
type Picker interface {
	Choose(ctx context.Context, title string, options []string) (choice string, ok bool, err error)
}

// Notifier shows messages to the user
type Notifier interface {
	Error(msg string)
	Info(msg string)
}

// Deps are the collaborators a session drives
type Deps struct {
	Registry *repo.Registry
	Source   repo.Source
	History  HistoryLister
	Picker   Picker
	Notifier Notifier
	Marker   string
}

// Session owns the selected collaborators and runs the pairing flows. It
// is not safe for concurrent use; callers dispatch one flow at a time.
type Session struct {
	id        string
	registry  *repo.Registry
	source    repo.Source
	history   HistoryLister
	picker    Picker
	notify    Notifier
	marker    string
	selection *Selection
}

// NewSession creates a session with an empty selection
func NewSession(deps Deps) *Session {
	registry := deps.Registry
	if registry == nil {
		registry = repo.NewRegistry()
	}
	marker := deps.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	return &Session{
		id:        uuid.NewString(),
		registry:  registry,
		source:    deps.Source,
		history:   deps.History,
		picker:    deps.Picker,
		notify:    deps.Notifier,
		marker:    marker,
		selection: NewSelection(),
	}
}

// ID identifies the session in logs
func (s *Session) ID() string {
	return s.id
}

// Registry returns the session's repository registry
func (s *Session) Registry() *repo.Registry {
	return s.registry
}

// Toggle flips the selection state of identity
func (s *Session) Toggle(identity string) bool {
	return s.selection.Toggle(identity)
}

// Selected returns the selected identities in iteration order
func (s *Session) Selected() []string {
	return s.selection.Identities()
}

// TrailerBlock renders the current selection as trailer lines
func (s *Session) TrailerBlock() string {
	return s.selection.TrailerBlock()
}

func (s *Session) log(ctx context.Context) pslog.Logger {
	return logx.WithSession(logx.Ctx(ctx), s.id)
}

// AddBuddy makes sure a repository is current, lists its history authors
// and lets the user toggle one of them.
func (s *Session) AddBuddy(ctx context.Context) error {
	h, ok, err := s.ensureCurrent(ctx)
	if err != nil || !ok {
		return err
	}

	candidates := s.Candidates(ctx, h.Path())
	if len(candidates) == 0 {
		return nil
	}

	labels := OrderCandidates(candidates, s.selection, s.marker)
	choice, ok, err := s.picker.Choose(ctx, "Toggle pairing buddy", labels)
	if err != nil {
		return fmt.Errorf("failed to pick buddy: %w", err)
	}
	if !ok {
		return nil
	}

	identity := strings.TrimPrefix(choice, s.marker)
	log := logx.WithRepo(s.log(ctx), h.Path())
	if s.Toggle(identity) {
		log.Info("buddy selected", "identity", identity)
		s.notifyInfo(fmt.Sprintf("Pairing with %s", identity))
	} else {
		log.Info("buddy deselected", "identity", identity)
		s.notifyInfo(fmt.Sprintf("No longer pairing with %s", identity))
	}
	return nil
}

// Candidates lists the distinct non-empty history identities of path. A
// failing history listing is logged and yields no candidates.
func (s *Session) Candidates(ctx context.Context, path string) []string {
	raw, err := s.history.Authors(ctx, path)
	if err != nil {
		logx.WithRepo(s.log(ctx), path).Warn("history listing failed", "err", err)
	}

	seen := make(map[string]bool, len(raw))
	var out []string
	for _, id := range raw {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// AppendPairing writes the trailer block into the current repository's
// message, replacing the block written by the previous append.
func (s *Session) AppendPairing(ctx context.Context) error {
	if s.selection.Len() == 0 {
		s.notifyError(MsgNoSelection)
		return nil
	}

	h, ok, err := s.ensureCurrent(ctx)
	if err != nil || !ok {
		return err
	}

	block := s.selection.TrailerBlock()
	if err := h.Splice(block); err != nil {
		return fmt.Errorf("failed to append pairing to %s: %w", h.Path(), err)
	}

	logx.WithRepo(s.log(ctx), h.Path()).Info("trailer block written", "buddies", s.selection.Len())
	s.notifyInfo(fmt.Sprintf("Appended %d co-author(s) to %s", s.selection.Len(), h.Path()))
	return nil
}

// Stop clears the selection and the current repository
func (s *Session) Stop(ctx context.Context) {
	s.selection.Clear()
	s.registry.ClearCurrent()
	s.log(ctx).Info("pairing stopped")
}

// SelectRepo prompts for the current repository, even when only one is
// known. Nothing happens until at least one repository is known.
func (s *Session) SelectRepo(ctx context.Context) error {
	if s.registry.Len() == 0 {
		s.notifyError(MsgNoRepositories)
		return nil
	}
	if err := s.refresh(ctx); err != nil {
		return err
	}
	if err := s.registry.ChooseCurrent(ctx, s.picker); err != nil {
		return err
	}
	if h, ok := s.registry.Current(); ok {
		logx.WithRepo(s.log(ctx), h.Path()).Info("repository selected")
	}
	return nil
}

// Status snapshots the session for display
func (s *Session) Status() models.Status {
	st := models.Status{
		SessionID: s.id,
		Known:     s.registry.Known(),
		Selected:  []models.Identity{},
		Trailer:   s.selection.TrailerBlock(),
	}
	if h, ok := s.registry.Current(); ok {
		st.Current = h.Path()
	}
	for _, id := range s.selection.Identities() {
		st.Selected = append(st.Selected, models.ParseIdentity(id))
	}
	return st
}

// ensureCurrent selects a repository only when none is current, refreshing
// from the source first if nothing is known yet.
func (s *Session) ensureCurrent(ctx context.Context) (*repo.Handle, bool, error) {
	if h, ok := s.registry.Current(); ok {
		return h, true, nil
	}
	if s.registry.Len() == 0 {
		if err := s.refresh(ctx); err != nil {
			return nil, false, err
		}
	}
	if err := s.registry.SelectCurrent(ctx, s.picker); err != nil {
		return nil, false, err
	}
	h, ok := s.registry.Current()
	return h, ok, nil
}

// refresh pulls open repositories from the source; an empty source is
// reported to the user and is not an error.
func (s *Session) refresh(ctx context.Context) error {
	err := s.registry.Refresh(ctx, s.source)
	if errors.Is(err, repo.ErrNoRepositories) {
		s.notifyError(MsgNoRepositories)
		return nil
	}
	return err
}

func (s *Session) notifyError(msg string) {
	if s.notify != nil {
		s.notify.Error(msg)
	}
}

func (s *Session) notifyInfo(msg string) {
	if s.notify != nil {
		s.notify.Info(msg)
	}
}
