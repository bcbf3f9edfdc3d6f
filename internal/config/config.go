// file: internal/config/config.go
// version: 2.0.0
// guid: 4546b319-cd79-4ce5-9c26-26fb74330972

package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Grouping modes accepted by the organizer.
const (
	GroupByArtistAlbum = "artist_album"
	GroupByGenreYear   = "genre_year"
)

// Defaults used when neither flags, environment nor a config file set a value.
const (
	DefaultMoveLog          = "music_organizer_log.txt"
	DefaultUndoLog          = "music_organizer_undo.txt"
	DefaultMiscFolder       = "Miscellaneous"
	DefaultPlaylistName     = "playlist.m3u"
	DefaultFlattenThreshold = 2
)

// Config holds application configuration
type Config struct {
	RootDir          string
	GroupBy          string // "artist_album" (default) or "genre_year"
	DryRun           bool
	FlattenThreshold int
	MoveLogPath      string
	UndoLogPath      string
	MiscFolder       string
	PlaylistName     string
	NormalizeUnicode bool
	VerifyCopies     bool
	Verbose          bool
	ReportPath       string
	MetricsPath      string

	SupportedExtensions []string
}

var AppConfig Config

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		GroupBy:             GroupByArtistAlbum,
		FlattenThreshold:    DefaultFlattenThreshold,
		MoveLogPath:         DefaultMoveLog,
		UndoLogPath:         DefaultUndoLog,
		MiscFolder:          DefaultMiscFolder,
		PlaylistName:        DefaultPlaylistName,
		VerifyCopies:        true,
		SupportedExtensions: []string{".mp3", ".flac", ".wav"},
	}
}

// InitConfig initializes the application configuration
func InitConfig() {
	def := Default()

	// Set defaults
	viper.SetDefault("group_by", def.GroupBy)
	viper.SetDefault("flatten", def.FlattenThreshold)
	viper.SetDefault("move_log", def.MoveLogPath)
	viper.SetDefault("undo_log", def.UndoLogPath)
	viper.SetDefault("misc_folder", def.MiscFolder)
	viper.SetDefault("playlist_name", def.PlaylistName)
	viper.SetDefault("verify_copies", def.VerifyCopies)
	viper.SetDefault("normalize_unicode", false)
	viper.SetDefault("supported_extensions", def.SupportedExtensions)

	AppConfig = Config{
		RootDir:             viper.GetString("root_dir"),
		GroupBy:             viper.GetString("group_by"),
		DryRun:              viper.GetBool("dry_run"),
		FlattenThreshold:    viper.GetInt("flatten"),
		MoveLogPath:         viper.GetString("move_log"),
		UndoLogPath:         viper.GetString("undo_log"),
		MiscFolder:          viper.GetString("misc_folder"),
		PlaylistName:        viper.GetString("playlist_name"),
		NormalizeUnicode:    viper.GetBool("normalize_unicode"),
		VerifyCopies:        viper.GetBool("verify_copies"),
		Verbose:             viper.GetBool("verbose"),
		ReportPath:          viper.GetString("report"),
		MetricsPath:         viper.GetString("metrics_file"),
		SupportedExtensions: NormalizeExtensions(viper.GetStringSlice("supported_extensions")),
	}

	if AppConfig.MiscFolder == "" {
		AppConfig.MiscFolder = def.MiscFolder
	}
	if AppConfig.PlaylistName == "" {
		AppConfig.PlaylistName = def.PlaylistName
	}
	if AppConfig.MoveLogPath == "" {
		AppConfig.MoveLogPath = def.MoveLogPath
	}
	if AppConfig.UndoLogPath == "" {
		AppConfig.UndoLogPath = def.UndoLogPath
	}
	if len(AppConfig.SupportedExtensions) == 0 {
		AppConfig.SupportedExtensions = def.SupportedExtensions
	}
}

// NormalizeExtensions lowercases extensions and ensures a leading dot.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// IsSupported reports whether name has one of the configured audio extensions.
// The comparison is case-insensitive.
func (c Config) IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, supported := range c.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ValidGroupBy reports whether mode is one of the two grouping modes.
func ValidGroupBy(mode string) bool {
	return mode == GroupByArtistAlbum || mode == GroupByGenreYear
}
