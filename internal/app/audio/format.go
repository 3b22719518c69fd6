package audio

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Format describes an audio container understood by ffmpeg.
// Name is the ffmpeg muxer/demuxer name passed with -f.
type Format struct {
	Name      string
	Extension string
	MIMEType  string
}

var (
	WebM = Format{Name: "webm", Extension: ".webm", MIMEType: "audio/webm"}
	Ogg  = Format{Name: "ogg", Extension: ".ogg", MIMEType: "audio/ogg"}
	MP3  = Format{Name: "mp3", Extension: ".mp3", MIMEType: "audio/mpeg"}
	WAV  = Format{Name: "wav", Extension: ".wav", MIMEType: "audio/wav"}
	FLAC = Format{Name: "flac", Extension: ".flac", MIMEType: "audio/flac"}
)

var formats = map[string]Format{
	WebM.Name: WebM,
	Ogg.Name:  Ogg,
	MP3.Name:  MP3,
	WAV.Name:  WAV,
	FLAC.Name: FLAC,
}

// LookupFormat returns the format registered under name (case-insensitive)
func LookupFormat(name string) (Format, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, fmt.Errorf("unsupported audio format %q (supported: %s)",
			name, strings.Join(SupportedFormats(), ", "))
	}
	return format, nil
}

// SupportedFormats lists the registered format names in sorted order
func SupportedFormats() []string {
	names := lo.Keys(formats)
	slices.Sort(names)
	return names
}

func (f Format) String() string {
	return f.Name
}

// FormatForExtension finds the format whose conventional extension is ext (".mp3", "wav", ...)
func FormatForExtension(ext string) (Format, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return lo.Find(lo.Values(formats), func(f Format) bool {
		return f.Extension == ext
	})
}
