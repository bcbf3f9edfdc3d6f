// file: internal/metadata/readers.go
// version: 1.1.0
// guid: 3243e3ec-c455-4dd1-8bc7-0cfcef98c0ed

package metadata

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// readWithTag reads ID3, MP4, FLAC and Ogg tags through dhowden/tag.
func readWithTag(path string) (rawTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return rawTags{}, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return rawTags{}, err
	}

	t := rawTags{
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
	}
	if y := m.Year(); y > 0 {
		t.Year = strconv.Itoa(y)
	}
	return t, nil
}

// readMP3WithID3v2 covers ID3 tags dhowden/tag rejects, such as some UTF-16 frames.
func readMP3WithID3v2(path string) (rawTags, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return rawTags{}, err
	}
	defer id3tag.Close()

	if !id3tag.HasFrames() {
		return rawTags{}, ErrNoTags
	}

	year := id3tag.Year()
	if year == "" {
		year = id3TextFrame(id3tag, "TDRC")
	}
	return rawTags{
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
		Genre:  id3tag.Genre(),
		Year:   year,
	}, nil
}

func id3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// readFLACVorbis reads the Vorbis comment block of a FLAC stream directly.
func readFLACVorbis(path string) (rawTags, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return rawTags{}, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return rawTags{}, err
		}
		year := vorbisField(cmts, flacvorbis.FIELD_DATE)
		if year == "" {
			year = vorbisField(cmts, "YEAR")
		}
		return rawTags{
			Artist: vorbisField(cmts, flacvorbis.FIELD_ARTIST),
			Album:  vorbisField(cmts, flacvorbis.FIELD_ALBUM),
			Genre:  vorbisField(cmts, flacvorbis.FIELD_GENRE),
			Year:   year,
		}, nil
	}
	return rawTags{}, ErrNoTags
}

func vorbisField(cmts *flacvorbis.MetaDataBlockVorbisComment, key string) string {
	values, err := cmts.Get(key)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
