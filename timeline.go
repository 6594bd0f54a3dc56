package seqstamps

import (
	"github.com/ansel1/merry/v2"
	"github.com/samber/lo"
)

// ProgressCallback is invoked once per clip that produced a caption.
type ProgressCallback func(index int, total int, clip ClipPlacement)

// MapTimeline turns ordered clip placements into ordered caption intervals.
//
// Each clip's native duration is converted into sequence frames with
// round-half-up rational arithmetic, so mixed-rate tracks do not drift
// against the picture over long timelines. Cue positions follow a running
// cursor seeded from the first clip's timeline start: captions stay
// contiguous, and gaps left by skipped clips are not captioned on their own.
//
// Clips with an invalid frame rate or an empty span are skipped and reported
// through the returned error list; they never abort the run. The returned
// intervals are strictly ordered, non-overlapping, one per surviving clip.
func MapTimeline(placements []ClipPlacement, seqRate FrameRate, resolver Resolver, progress ProgressCallback) ([]CaptionInterval, []error) {
	placements = lo.Filter(placements, func(c ClipPlacement, _ int) bool { return c.Enabled })

	intervals := make([]CaptionInterval, 0, len(placements))
	var errs []error

	var cursor int64
	started := false
	total := len(placements)

	for i, clip := range placements {
		if !clip.FrameRate.Valid() {
			errs = append(errs, merry.Prepend(ErrMalformedClip, "invalid frame rate for "+clip.SourcePath))
			continue
		}
		native := clip.NativeFrames()
		if native <= 0 {
			errs = append(errs, merry.Prepend(ErrMalformedClip, "empty frame span for "+clip.SourcePath))
			continue
		}
		seqFrames := ConvertFrames(native, clip.FrameRate, seqRate)
		if seqFrames <= 0 {
			errs = append(errs, merry.Prepend(ErrMalformedClip, "clip shorter than one sequence frame: "+clip.SourcePath))
			continue
		}

		if !started {
			cursor = clip.TimelineStart
			started = true
		}

		ts := resolver.Resolve(clip.SourcePath)
		intervals = append(intervals, CaptionInterval{
			Start: cursor,
			End:   cursor + seqFrames,
			Label: ts.Label(clip.Name),
		})
		cursor += seqFrames

		if progress != nil {
			progress(i+1, total, clip)
		}
	}

	return intervals, errs
}

// ConvertFrames rescales a frame count from one rate to another, rounding
// half up. Exact for rates that divide evenly; at most one frame of rounding
// error otherwise. Intermediate products need frames*rate.Num*rate.Den to fit
// in int64, which holds up to ~10^9 frames at NTSC rates — hundreds of days
// of timeline.
func ConvertFrames(frames int64, from FrameRate, to FrameRate) int64 {
	if from == to {
		return frames
	}
	num := frames * int64(to.Num) * int64(from.Den)
	den := int64(from.Num) * int64(to.Den)
	return (2*num + den) / (2 * den)
}
