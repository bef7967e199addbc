// Package video inspects rendered files with ffprobe before they are published.
package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrTooLong is returned when a file exceeds the configured maximum duration.
var ErrTooLong = errors.New("video exceeds maximum duration")

// ErrNotVertical is returned when vertical framing is required and the video stream is not taller than wide.
var ErrNotVertical = errors.New("video is not vertical")

// Info is the subset of ffprobe output used for preflight checks.
type Info struct {
	Duration time.Duration
	Width    int
	Height   int
}

// Vertical reports whether the first video stream is taller than it is wide.
func (i Info) Vertical() bool {
	return i.Height > i.Width
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// ProbeFunc runs ffprobe on a file and returns its JSON report.
type ProbeFunc func(fileName string, kwargs ...ffmpeg.KwArgs) (string, error)

// Prober reads duration and dimensions of video files.
type Prober struct {
	probe ProbeFunc
}

// NewProber uses the ffprobe binary on PATH.
func NewProber() *Prober {
	return &Prober{probe: ffmpeg.Probe}
}

// NewProberWith uses a custom probe function.
func NewProberWith(probe ProbeFunc) *Prober {
	return &Prober{probe: probe}
}

// Probe returns the duration and dimensions of the file at path.
func (p *Prober) Probe(path string) (Info, error) {
	raw, err := p.probe(path)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Info{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: bad duration %q: %w", path, out.Format.Duration, err)
	}

	info := Info{Duration: time.Duration(seconds * float64(time.Second))}
	for _, s := range out.Streams {
		if s.CodecType == "video" {
			info.Width, info.Height = s.Width, s.Height
			break
		}
	}
	return info, nil
}

// Preflight rejects files longer than Max and, with Vertical set, files
// whose video stream is not in portrait framing. A zero Max disables the
// duration check.
type Preflight struct {
	prober   *Prober
	Max      time.Duration
	Vertical bool
}

func NewPreflight(prober *Prober, maxSeconds float64, requireVertical bool) *Preflight {
	return &Preflight{
		prober:   prober,
		Max:      time.Duration(maxSeconds * float64(time.Second)),
		Vertical: requireVertical,
	}
}

// Enabled reports whether files are probed at all.
func (p *Preflight) Enabled() bool {
	return p != nil && (p.Max > 0 || p.Vertical)
}

// Check probes the file and returns ErrTooLong or ErrNotVertical when it
// breaks a configured limit.
func (p *Preflight) Check(path string) (Info, error) {
	if !p.Enabled() {
		return Info{}, nil
	}

	info, err := p.prober.Probe(path)
	if err != nil {
		return Info{}, err
	}
	if p.Max > 0 && info.Duration > p.Max {
		return info, fmt.Errorf("%w: %s is %s, limit %s", ErrTooLong, path, info.Duration, p.Max)
	}
	if p.Vertical && !info.Vertical() {
		return info, fmt.Errorf("%w: %s is %dx%d", ErrNotVertical, path, info.Width, info.Height)
	}
	return info, nil
}
