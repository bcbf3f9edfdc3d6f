// file: internal/organizer/planner.go
// version: 1.0.0
// guid: 31d55713-6f0c-4800-90d4-9c72b226661c

package organizer

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jdfalk/music-organizer/internal/config"
	"github.com/jdfalk/music-organizer/internal/fileops"
	"github.com/jdfalk/music-organizer/internal/metadata"
)

// Occupancy counts how many files of the current run were classified into
// each directory. It also remembers the order directories were first seen.
type Occupancy struct {
	counts map[string]int
	order  []string
}

// NewOccupancy creates an empty occupancy map.
func NewOccupancy() *Occupancy {
	return &Occupancy{counts: make(map[string]int)}
}

// Add increments the count of dir and returns the new count.
func (o *Occupancy) Add(dir string) int {
	if _, seen := o.counts[dir]; !seen {
		o.order = append(o.order, dir)
	}
	o.counts[dir]++
	return o.counts[dir]
}

// Count returns how many files have been classified into dir so far.
func (o *Occupancy) Count(dir string) int {
	return o.counts[dir]
}

// Dirs returns every classified directory in first-seen order.
func (o *Occupancy) Dirs() []string {
	return append([]string(nil), o.order...)
}

// Plan is where one file should go.
type Plan struct {
	Source string
	// ClassifiedDir is the directory derived from metadata alone.
	ClassifiedDir string
	// TargetDir is ClassifiedDir, or the miscellaneous folder when flattened.
	TargetDir string
	FileName  string
	Flattened bool
	// Count is the occupancy of ClassifiedDir including this file.
	Count int
}

// Destination returns the full target path.
func (p Plan) Destination() string {
	return filepath.Join(p.TargetDir, p.FileName)
}

// Planner computes target locations for files under Root.
type Planner struct {
	Root             string
	Mode             string
	FlattenThreshold int
	MiscFolder       string
	Sanitizer        metadata.Sanitizer
}

// ClassifiedDir returns the metadata-derived directory for info. Unknown
// modes group by artist and album.
func (p *Planner) ClassifiedDir(info metadata.Info) string {
	switch p.Mode {
	case config.GroupByGenreYear:
		return filepath.Join(p.Root, info.Genre, info.Year)
	default:
		return filepath.Join(p.Root, info.Artist, info.Album)
	}
}

// MiscDir returns the flattening bucket.
func (p *Planner) MiscDir() string {
	name := p.MiscFolder
	if name == "" {
		name = config.DefaultMiscFolder
	}
	return filepath.Join(p.Root, name)
}

// Plan classifies source, bumps the occupancy of its directory and decides
// whether it is flattened. The decision uses the running count, so the first
// FlattenThreshold files of any directory always land in the miscellaneous
// folder under their sanitized original name.
func (p *Planner) Plan(source string, info metadata.Info, occ *Occupancy) Plan {
	classified := p.ClassifiedDir(info)
	count := occ.Add(classified)
	fileName := p.Sanitizer.Clean(filepath.Base(source))

	plan := Plan{
		Source:        source,
		ClassifiedDir: classified,
		TargetDir:     classified,
		FileName:      uniqueName(classified, fileName, source),
		Count:         count,
	}

	if count <= p.FlattenThreshold {
		plan.TargetDir = p.MiscDir()
		plan.FileName = fileName
		plan.Flattened = true
	}
	return plan
}

// uniqueName appends _1, _2, ... before the extension until nothing exists at
// the candidate path. The source file itself never counts as a collision.
func uniqueName(dir, name, source string) string {
	candidate := name
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	source = filepath.Clean(source)

	for i := 1; ; i++ {
		path := filepath.Join(dir, candidate)
		if path == source || !fileops.Exists(path) {
			return candidate
		}
		candidate = base + "_" + strconv.Itoa(i) + ext
	}
}
