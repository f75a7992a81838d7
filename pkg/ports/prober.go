package ports

import "time"

// MediaTrack describes one track of a media container.
type MediaTrack struct {
	ID      uint32
	Handler string // "vide", "soun", ...
	Codec   string // sample entry fourcc, e.g. "avc1"
	Width   int
	Height  int
}

// MediaInfo describes a probed media file.
type MediaInfo struct {
	Path       string
	Size       int64
	Brand      string
	Fragmented bool
	Duration   time.Duration
	Tracks     []MediaTrack
}

// Prober inspects media files before they are handed to the transcoder.
type Prober interface {
	Probe(path string) (MediaInfo, error)
}
