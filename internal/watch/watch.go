package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ostafen/envcarve/internal/container"
	"github.com/ostafen/envcarve/internal/extract"
	"github.com/ostafen/envcarve/internal/filter"
	"github.com/ostafen/envcarve/internal/source"
)

const DefaultQuietPeriod = 500 * time.Millisecond

type Options struct {
	Dir          string // Directory to watch
	OutDir       string // Records of <Dir>/x.env go to <OutDir>/x-files/
	Inputs       *filter.Filter
	Records      *filter.Filter
	Parser       *container.Parser
	QuietPeriod  time.Duration
	MaxInputSize uint64
	Logger       *slog.Logger

	// OnUnpack, if set, is called after each container has been processed.
	OnUnpack func(path string, files int, err error)
}

// Watcher unpacks containers as they appear in a directory.
type Watcher struct {
	opts    Options
	pending map[string]time.Time
}

func New(opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("no directory to watch")
	}
	if opts.OutDir == "" {
		opts.OutDir = opts.Dir
	}
	if opts.Inputs == nil {
		opts.Inputs, _ = filter.New()
	}
	if opts.Records == nil {
		opts.Records, _ = filter.New()
	}
	if opts.Parser == nil {
		opts.Parser = container.NewParser()
	}
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		opts:    opts,
		pending: make(map[string]time.Time),
	}, nil
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("unable to watch %q: %w", w.opts.Dir, err)
	}

	ticker := time.NewTicker(w.opts.QuietPeriod / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Error("watch error", "err", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		if !w.opts.Inputs.Match(filepath.Base(ev.Name)) {
			return
		}
		w.pending[ev.Name] = time.Now()
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		delete(w.pending, ev.Name)
	}
}

// flush processes every pending file that has not changed for a quiet period.
func (w *Watcher) flush(now time.Time) {
	for path, last := range w.pending {
		if now.Sub(last) < w.opts.QuietPeriod {
			continue
		}
		delete(w.pending, path)

		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		n, err := w.Unpack(path)
		if err != nil {
			w.opts.Logger.Error("unable to unpack container", "path", path, "err", err)
		} else {
			w.opts.Logger.Info("container unpacked", "path", path, "files", n)
		}

		if w.opts.OnUnpack != nil {
			w.opts.OnUnpack(path, n, err)
		}
	}
}

// OutputDir returns the directory receiving the records of the container at
// path: <OutDir>/<name>-files, name being the base name without extension.
func (w *Watcher) OutputDir(path string) string {
	base := filepath.Base(path)

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = base
	}
	return filepath.Join(w.opts.OutDir, name+"-files")
}

// Unpack parses the container at path and writes its records.
func (w *Watcher) Unpack(path string) (int, error) {
	buf, err := source.Load(path, w.opts.MaxInputSize)
	if err != nil {
		return 0, err
	}
	defer buf.Close()

	var recs []container.Record
	for res := range w.opts.Parser.Scan(buf.Bytes()) {
		if res.Dropped != container.DropNone {
			w.opts.Logger.Debug("segment dropped",
				"path", path,
				"index", res.Segment.Index,
				"offset", res.Segment.Offset,
				"reason", res.Dropped.String(),
			)
			continue
		}
		recs = append(recs, res.Record)
	}

	recs = w.opts.Records.Records(recs)
	if len(recs) == 0 {
		return 0, extract.ErrNoFiles
	}

	if err := extract.WriteFiles(w.OutputDir(path), recs, nil); err != nil {
		return 0, err
	}
	return len(recs), nil
}
