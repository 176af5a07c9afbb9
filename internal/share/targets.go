package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/storage"
)

// Built-in target names.
const (
	TargetLog        = "log"
	TargetFile       = "file"
	TargetClipboard  = "clipboard"
	TargetScoreboard = "scoreboard"
)

func init() {
	Register(TargetLog, func(d Deps) (Sharer, error) {
		if d.Logger == nil {
			return nil, errors.New("share: log target needs a logger")
		}
		return &LogSharer{logger: d.Logger}, nil
	})
	Register(TargetFile, func(d Deps) (Sharer, error) {
		if d.FilePath == "" {
			return nil, errors.New("share: file target needs a path")
		}
		return &FileSharer{path: d.FilePath}, nil
	})
	Register(TargetClipboard, func(d Deps) (Sharer, error) {
		if d.Terminal == nil {
			return nil, errors.New("share: clipboard target needs a terminal")
		}
		return &ClipboardSharer{out: d.Terminal, tmux: os.Getenv("TMUX") != ""}, nil
	})
	Register(TargetScoreboard, func(d Deps) (Sharer, error) {
		if d.Store == nil {
			return nil, errors.New("share: scoreboard target needs a store")
		}
		return &ScoreboardSharer{store: d.Store, logger: d.Logger}, nil
	})
}

// LogSharer writes the result to the structured log.
type LogSharer struct {
	logger *log.Logger
}

func (s *LogSharer) Name() string { return TargetLog }

func (s *LogSharer) Share(_ context.Context, r Result) error {
	s.logger.Info(r.Message, "score", r.Score, "max_tile", r.MaxTile, "moves", r.Moves, "won", r.Won)
	return nil
}

// FileSharer appends one line per result to a text file.
type FileSharer struct {
	path string
	now  func() time.Time
}

func (s *FileSharer) Name() string { return TargetFile }

func (s *FileSharer) Share(_ context.Context, r Result) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", s.path, err)
	}
	defer f.Close()

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	line := fmt.Sprintf("%s\t%s\n", now().Format(time.RFC3339), strings.TrimSpace(r.Message))
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("cannot write %s: %w", s.path, err)
	}
	return nil
}

// ClipboardSharer copies the message to the system clipboard through the
// terminal using an OSC52 escape sequence.
type ClipboardSharer struct {
	out  io.Writer
	tmux bool
}

func (s *ClipboardSharer) Name() string { return TargetClipboard }

func (s *ClipboardSharer) Share(_ context.Context, r Result) error {
	seq := osc52.New(r.Message)
	if s.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(s.out); err != nil {
		return fmt.Errorf("cannot write OSC52 sequence: %w", err)
	}
	return nil
}

// ScoreboardSharer records the result in the local result history.
// The stored ID is logged when a logger is set.
type ScoreboardSharer struct {
	store  *storage.Store
	logger *log.Logger
}

func (s *ScoreboardSharer) Name() string { return TargetScoreboard }

func (s *ScoreboardSharer) Share(ctx context.Context, r Result) error {
	id, err := s.store.SaveResult(ctx, storage.Result{
		Scoring: r.Scoring,
		Score:   r.Score,
		MaxTile: r.MaxTile,
		Moves:   r.Moves,
		Won:     r.Won,
	})
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("result saved", "id", id, "scoring", r.Scoring)
	}
	return nil
}
