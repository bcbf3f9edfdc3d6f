// file: internal/organizer/organizer.go
// version: 2.1.0
// guid: bd593c37-2d85-45dc-8316-14cd16c13755

package organizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jdfalk/music-organizer/internal/config"
	"github.com/jdfalk/music-organizer/internal/fileops"
	"github.com/jdfalk/music-organizer/internal/metadata"
	"github.com/jdfalk/music-organizer/internal/metrics"
	"github.com/jdfalk/music-organizer/internal/movelog"
	"github.com/jdfalk/music-organizer/internal/playlist"
	"github.com/jdfalk/music-organizer/internal/scanner"
)

// ErrInvalidRoot is returned when the music folder is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid music folder path")

// MetadataReader yields the classification metadata of a file.
type MetadataReader interface {
	Read(path string) metadata.Result
}

// Progress is advanced once per processed file.
type Progress interface {
	Add(n int) error
}

// Summary reports what a run did.
type Summary struct {
	RunID      string
	Root       string
	Mode       string
	DryRun     bool
	Discovered int
	Moved      int
	Skipped    int
	Errors     int
	Previewed  int
	Flattened  int
	Fallbacks  int
	BytesMoved int64
	// Directories lists every classified directory in first-seen order.
	Directories []string
	// Playlists lists the directories that received a playlist.
	Playlists []string
	Started   time.Time
	Duration  time.Duration
}

// Line renders the one-line summary printed after a run.
func (s Summary) Line() string {
	return fmt.Sprintf("Moved=%d Skipped=%d Errors=%d", s.Moved, s.Skipped, s.Errors)
}

// Organizer handles file organization operations
type Organizer struct {
	config    config.Config
	planner   *Planner
	metadata  MetadataReader
	journal   *movelog.Journal
	executor  *Executor
	playlists playlist.Generator
	metrics   *metrics.Recorder
	progress  Progress
	out       io.Writer
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithMetadataReader replaces the tag-based metadata reader.
func WithMetadataReader(r MetadataReader) Option {
	return func(o *Organizer) { o.metadata = r }
}

// WithMetrics records run counters into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Organizer) { o.metrics = r }
}

// WithProgress advances p after each file.
func WithProgress(p Progress) Option {
	return func(o *Organizer) { o.progress = p }
}

// WithOutput sets where dry-run previews are printed.
func WithOutput(w io.Writer) Option {
	return func(o *Organizer) { o.out = w }
}

// WithMoveFunc replaces the filesystem move, mostly for tests.
func WithMoveFunc(fn MoveFunc) Option {
	return func(o *Organizer) { o.executor.Move = fn }
}

// NewOrganizer creates a new organizer instance. A relative root is resolved
// against the working directory so journaled paths stay absolute.
func NewOrganizer(cfg config.Config, journal *movelog.Journal, opts ...Option) *Organizer {
	if abs, err := filepath.Abs(cfg.RootDir); err == nil && cfg.RootDir != "" {
		cfg.RootDir = abs
	}
	sanitizer := metadata.Sanitizer{NormalizeUnicode: cfg.NormalizeUnicode}
	o := &Organizer{
		config: cfg,
		planner: &Planner{
			Root:             cfg.RootDir,
			Mode:             cfg.GroupBy,
			FlattenThreshold: cfg.FlattenThreshold,
			MiscFolder:       cfg.MiscFolder,
			Sanitizer:        sanitizer,
		},
		metadata: metadata.NewExtractor(sanitizer),
		journal:  journal,
		playlists: playlist.Generator{
			Name:    cfg.PlaylistName,
			IsAudio: cfg.IsSupported,
		},
		out: os.Stdout,
	}
	o.executor = NewExecutor(journal, fileops.MoveOptions{VerifyChecksums: cfg.VerifyCopies}, nil)
	for _, opt := range opts {
		opt(o)
	}
	o.executor.Out = o.out
	return o
}

// Run organizes every supported file under the configured root, then writes
// playlists. Per-file failures are counted, not returned. The returned error
// is non-nil only when the run could not start or ctx was cancelled, in which
// case the summary covers the files processed so far.
func (o *Organizer) Run(ctx context.Context) (summary Summary, err error) {
	summary = Summary{
		RunID:   ulid.Make().String(),
		Root:    o.config.RootDir,
		Mode:    o.config.GroupBy,
		DryRun:  o.config.DryRun,
		Started: time.Now(),
	}
	defer func() {
		summary.Duration = time.Since(summary.Started)
		o.metrics.ObserveRunDuration("organize", summary.Duration)
	}()

	info, err := os.Stat(o.config.RootDir)
	if err != nil || !info.IsDir() {
		return summary, fmt.Errorf("%w: %s", ErrInvalidRoot, o.config.RootDir)
	}

	if !o.config.DryRun {
		if err := o.journal.Lock(); err != nil {
			return summary, err
		}
	}

	files, err := scanner.ScanDirectory(o.config.RootDir, o.config.IsSupported)
	if err != nil {
		return summary, err
	}
	summary.Discovered = len(files)
	log.Printf("[INFO] organizer: run %s found %d audio files under %s", summary.RunID, len(files), o.config.RootDir)

	occupancy := NewOccupancy()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Directories = occupancy.Dirs()
			return summary, err
		}
		o.process(file, occupancy, &summary)
		if o.progress != nil {
			_ = o.progress.Add(1)
		}
	}
	summary.Directories = occupancy.Dirs()

	if !o.config.DryRun {
		o.writePlaylists(&summary)
	}
	return summary, nil
}

// process drives one file from discovery to its terminal state.
func (o *Organizer) process(file scanner.AudioFile, occupancy *Occupancy, summary *Summary) {
	meta := o.metadata.Read(file.Path)
	o.metrics.ObserveMetadata(meta.Kind.String())
	if meta.Kind == metadata.Fallback {
		summary.Fallbacks++
		if o.config.Verbose {
			log.Printf("[DEBUG] organizer: no usable tags in %s: %v", file.Path, meta.Reason)
		}
	}

	plan := o.planner.Plan(file.Path, meta.Info, occupancy)
	if plan.Flattened {
		summary.Flattened++
	}

	res := o.executor.Execute(plan.Source, plan.TargetDir, plan.FileName, o.config.DryRun)
	o.metrics.ObserveFile(res.Outcome.String())
	switch res.Outcome {
	case Moved:
		summary.Moved++
		summary.BytesMoved += res.Bytes
		o.metrics.AddBytesMoved(res.Bytes)
	case Skipped:
		summary.Skipped++
	case Failed:
		summary.Errors++
	case Previewed:
		summary.Previewed++
	}

	if o.config.Verbose {
		log.Printf("[DEBUG] organizer: %s %s -> %s (count=%d flattened=%t)",
			res.Outcome, plan.Source, res.Destination, plan.Count, plan.Flattened)
	}
}

// writePlaylists regenerates the manifest of every directory counted during
// the run, including those whose files were all flattened away, and of the
// miscellaneous folder. Empty or missing directories are left alone.
func (o *Organizer) writePlaylists(summary *Summary) {
	dirs := append(append([]string(nil), summary.Directories...), o.planner.MiscDir())
	for _, dir := range dirs {
		written, err := o.playlists.Generate(dir)
		if err != nil {
			log.Printf("[WARN] organizer: playlist for %s: %v", dir, err)
			continue
		}
		if written {
			summary.Playlists = append(summary.Playlists, dir)
			o.metrics.IncPlaylists()
		}
	}
}
