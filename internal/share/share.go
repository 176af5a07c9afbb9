// Package share delivers a finished game's result to external targets.
// Targets register themselves by name so configuration can select them.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/storage"
)

// Result is the final state handed to sharers on game over.
type Result struct {
	Scoring string
	Score   int
	MaxTile int
	Moves   int
	Won     bool
	Message string
}

// Sharer publishes a result somewhere.
type Sharer interface {
	Name() string
	Share(ctx context.Context, r Result) error
}

// Deps carries the collaborators built-in sharers may need.
type Deps struct {
	Logger   *log.Logger
	Store    *storage.Store
	FilePath string    // destination of the file sharer
	Terminal io.Writer // receives OSC52 sequences
}

// Factory builds a sharer from its dependencies.
type Factory func(Deps) (Sharer, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a sharer factory under name.
// Panics if the name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("share: target %q already registered", name))
	}
	factories[name] = f
}

// Names returns all registered target names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create instantiates the sharer registered under name.
func Create(name string, deps Deps) (Sharer, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("share: unknown target %q", name)
	}
	return f(deps)
}

// Build creates a Multi from a list of target names. Targets that cannot be
// created are skipped; their errors are joined into the returned error, and
// the Multi is always usable.
func Build(names []string, deps Deps) (*Multi, error) {
	sharers := make([]Sharer, 0, len(names))
	var errs []error
	for _, name := range names {
		s, err := Create(name, deps)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sharers = append(sharers, s)
	}
	return NewMulti(sharers...), errors.Join(errs...)
}

// Multi fans a result out to several sharers. Every sharer runs even if an
// earlier one fails.
type Multi struct {
	sharers []Sharer
}

// NewMulti creates a fan-out sharer.
func NewMulti(sharers ...Sharer) *Multi {
	return &Multi{sharers: sharers}
}

// Name returns "multi".
func (m *Multi) Name() string {
	return "multi"
}

// Len returns the number of wrapped sharers.
func (m *Multi) Len() int {
	return len(m.sharers)
}

// Share calls every sharer and joins their errors.
func (m *Multi) Share(ctx context.Context, r Result) error {
	var errs []error
	for _, s := range m.sharers {
		if err := s.Share(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("share %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
