package repo

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"
)

// ErrNoRepositories is returned by Refresh when the source has nothing open
var ErrNoRepositories = errors.New("no repositories found")

// Picker asks the user to choose one of options. ok is false when the user
// dismissed the prompt without choosing.
type Picker interface {
	Choose(ctx context.Context, title string, options []string) (choice string, ok bool, err error)
}

// Registry tracks known repositories in registration order and which one
// is current. Repositories are never removed.
type Registry struct {
	handles map[string]*Handle
	order   []string
	current *Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// RegisterIfAbsent adds path with its sink unless path is already known.
// It reports whether a new handle was created.
func (r *Registry) RegisterIfAbsent(path string, sink MessageSink) bool {
	if _, ok := r.handles[path]; ok {
		return false
	}
	r.handles[path] = &Handle{path: path, sink: sink}
	r.order = append(r.order, path)
	return true
}

// Known returns the registered paths in registration order
func (r *Registry) Known() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of known repositories
func (r *Registry) Len() int {
	return len(r.order)
}

// Handle returns the handle registered under path
func (r *Registry) Handle(path string) (*Handle, bool) {
	h, ok := r.handles[path]
	return h, ok
}

// Refresh registers every repository the source currently reports.
// Repositories that disappeared from the source stay registered.
func (r *Registry) Refresh(ctx context.Context, source Source) error {
	repos, err := source.Repositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to query repositories: %w", err)
	}
	if len(repos) == 0 {
		return ErrNoRepositories
	}

	log := pslog.Ctx(ctx)
	for _, repo := range repos {
		if r.RegisterIfAbsent(repo.Path, repo.Sink) {
			log.Debug("repository registered", "repo_path", repo.Path)
		}
	}
	return nil
}

// SelectCurrent picks the current repository. A single known repository is
// selected without prompting; with several the picker decides and a
// cancelled prompt leaves the current repository as it was.
func (r *Registry) SelectCurrent(ctx context.Context, picker Picker) error {
	switch len(r.order) {
	case 0:
		return nil
	case 1:
		r.current = r.handles[r.order[0]]
		return nil
	default:
		return r.ChooseCurrent(ctx, picker)
	}
}

// ChooseCurrent always prompts, even when only one repository is known
func (r *Registry) ChooseCurrent(ctx context.Context, picker Picker) error {
	if len(r.order) == 0 {
		return nil
	}

	choice, ok, err := picker.Choose(ctx, "Select repository", r.Known())
	if err != nil {
		return fmt.Errorf("failed to pick repository: %w", err)
	}
	if !ok {
		return nil
	}

	h, known := r.handles[choice]
	if !known {
		return fmt.Errorf("unknown repository: %s", choice)
	}
	r.current = h
	return nil
}

// Current returns the current repository handle, if one is selected
func (r *Registry) Current() (*Handle, bool) {
	return r.current, r.current != nil
}

// ClearCurrent unsets the current repository
func (r *Registry) ClearCurrent() {
	r.current = nil
}
