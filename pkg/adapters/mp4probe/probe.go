// Package mp4probe inspects MP4 containers before they are transcoded.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/ffconsole/pkg/ports"
)

// ErrNoTracks is returned when a file decodes but has no moov tracks.
var ErrNoTracks = errors.New("no tracks found")

// Prober reads MP4 metadata with mp4ff.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe inspects the MP4 file at path.
func (p *Prober) Probe(path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := p.ProbeReader(f)
	if err != nil {
		return ports.MediaInfo{}, err
	}
	info.Path = path
	if st, err := f.Stat(); err == nil {
		info.Size = st.Size()
	}
	return info, nil
}

// ProbeBytes inspects MP4 data held in memory.
func (p *Prober) ProbeBytes(data []byte) (ports.MediaInfo, error) {
	info, err := p.ProbeReader(bytes.NewReader(data))
	if err != nil {
		return ports.MediaInfo{}, err
	}
	info.Size = int64(len(data))
	return info, nil
}

// ProbeReader inspects MP4 data from an io.ReadSeeker.
func (p *Prober) ProbeReader(reader io.ReadSeeker) (ports.MediaInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	return describe(mp4File)
}

func describe(mp4File *mp4.File) (ports.MediaInfo, error) {
	info := ports.MediaInfo{
		Fragmented: mp4File.IsFragmented(),
	}
	if mp4File.Ftyp != nil {
		info.Brand = mp4File.Ftyp.MajorBrand()
	}

	// Fragmented files carry the track headers in the init segment
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil || len(moov.Traks) == 0 {
		return info, ErrNoTracks
	}

	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		info.Duration = scaled(moov.Mvhd.Duration, moov.Mvhd.Timescale)
	}

	for _, trak := range moov.Traks {
		info.Tracks = append(info.Tracks, describeTrack(trak))
	}
	return info, nil
}

func describeTrack(trak *mp4.TrakBox) ports.MediaTrack {
	var track ports.MediaTrack
	if trak.Tkhd != nil {
		track.ID = trak.Tkhd.TrackID
		// Track dimensions are 16.16 fixed point
		track.Width = int(uint32(trak.Tkhd.Width) >> 16)
		track.Height = int(uint32(trak.Tkhd.Height) >> 16)
	}

	if trak.Mdia == nil {
		return track
	}
	if trak.Mdia.Hdlr != nil {
		track.Handler = trak.Mdia.Hdlr.HandlerType
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return track
	}

	// The first sample entry describes the track's codec
	children := trak.Mdia.Minf.Stbl.Stsd.Children
	if len(children) == 0 {
		return track
	}
	track.Codec = children[0].Type()
	if vse, ok := children[0].(*mp4.VisualSampleEntryBox); ok && track.Width == 0 {
		track.Width = int(vse.Width)
		track.Height = int(vse.Height)
	}
	return track
}

func scaled(value uint64, timescale uint32) time.Duration {
	return time.Duration(float64(value) / float64(timescale) * float64(time.Second))
}

// CodecName returns a readable codec name for a sample entry fourcc.
func CodecName(fourcc string) string {
	switch fourcc {
	case "avc1", "avc3":
		return "H.264"
	case "hvc1", "hev1":
		return "H.265"
	case "av01":
		return "AV1"
	case "vp08":
		return "VP8"
	case "vp09":
		return "VP9"
	case "mp4a":
		return "AAC"
	case "Opus":
		return "Opus"
	case "ac-3":
		return "AC-3"
	case "ec-3":
		return "E-AC-3"
	case "":
		return "unknown"
	default:
		return fourcc
	}
}

// Summary renders a one-line description of info, e.g.
// "H.264 1280x720, AAC, 12.5s".
func Summary(info ports.MediaInfo) string {
	var b bytes.Buffer
	for i, t := range info.Tracks {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(CodecName(t.Codec))
		if t.Handler == "vide" && t.Width > 0 && t.Height > 0 {
			fmt.Fprintf(&b, " %dx%d", t.Width, t.Height)
		}
	}
	if info.Duration > 0 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.1fs", info.Duration.Seconds())
	}
	return b.String()
}

var _ ports.Prober = (*Prober)(nil)
