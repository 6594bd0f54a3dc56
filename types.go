package seqstamps

import (
	"fmt"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
)

var ErrMalformedClip = merry.Sentinel("malformed clip")

// UnknownLabel marks a caption whose media file yielded no usable capture date.
const UnknownLabel = "[NO-DATE]"

// FrameRate is a rational frames-per-second value. FCP7 XMEML expresses rates
// as an integer timebase plus an NTSC flag, so NTSC rates are 1001-denominator
// rationals rather than the rounded timebase.
type FrameRate struct {
	Num int
	Den int
}

func NewFrameRate(timebase int, ntsc bool) FrameRate {
	if ntsc {
		switch timebase {
		case 24, 30, 60:
			return FrameRate{Num: timebase * 1000, Den: 1001}
		}
	}
	return FrameRate{Num: timebase, Den: 1}
}

func (r FrameRate) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

func (r FrameRate) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r FrameRate) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%.2f", r.Float())
}

// ClipPlacement is one clip's occurrence on the sequence timeline.
// TimelineStart/TimelineEnd are a half-open frame interval in sequence frames
// as declared by the project file. FrameRate is the source media's rate, which
// may differ from the sequence rate. Built once by the parser, read-only after.
type ClipPlacement struct {
	SourcePath    string
	Name          string
	TimelineStart int64
	TimelineEnd   int64
	FrameRate     FrameRate
	Enabled       bool
}

func (c ClipPlacement) NativeFrames() int64 {
	return c.TimelineEnd - c.TimelineStart
}

// DateSource classifies where a resolved capture date came from.
type DateSource enum.Member[string]

var (
	DateSourceEmbedded   = DateSource{Value: "embedded"}
	DateSourceFilesystem = DateSource{Value: "filesystem"}
	DateSourceFilename   = DateSource{Value: "filename"}
	DateSourceNone       = DateSource{Value: "none"}
	DateSources          = enum.New(DateSourceEmbedded, DateSourceFilesystem, DateSourceFilename, DateSourceNone)
)

// ResolvedTimestamp is a capture date/time or an explicit unknown. Known is
// the sentinel; a zero Time with Known set would still render as a date.
type ResolvedTimestamp struct {
	Time   time.Time
	Source DateSource
	Known  bool
}

func Unknown() ResolvedTimestamp {
	return ResolvedTimestamp{Source: DateSourceNone}
}

// Label renders the caption text for this timestamp. name is the clip's
// display name, appended to the sentinel so unresolved cues are traceable.
func (t ResolvedTimestamp) Label(name string) string {
	if !t.Known {
		if name == "" {
			return UnknownLabel
		}
		return UnknownLabel + " " + name
	}
	return t.Time.Format("2006-01-02 15:04:05")
}

// Resolver looks up the capture timestamp for a media file. Implementations
// never fail; missing metadata resolves as Unknown.
type Resolver interface {
	Resolve(path string) ResolvedTimestamp
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) ResolvedTimestamp

func (f ResolverFunc) Resolve(path string) ResolvedTimestamp {
	return f(path)
}

// CaptionInterval is one subtitle cue span in sequence frames, half-open.
type CaptionInterval struct {
	Start int64
	End   int64
	Label string
}
