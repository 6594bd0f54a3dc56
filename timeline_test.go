package seqstamps_test

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatools/seqstamps"
)

var rate24 = seqstamps.FrameRate{Num: 24, Den: 1}

func fixedResolver(known map[string]time.Time) seqstamps.Resolver {
	return seqstamps.ResolverFunc(func(path string) seqstamps.ResolvedTimestamp {
		if t, ok := known[path]; ok {
			return seqstamps.ResolvedTimestamp{Time: t, Source: seqstamps.DateSourceEmbedded, Known: true}
		}
		return seqstamps.Unknown()
	})
}

func TestMapTimeline_TwoClips(t *testing.T) {
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 0, TimelineEnd: 100, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/b.mov", TimelineStart: 100, TimelineEnd: 150, FrameRate: rate24, Enabled: true},
	}
	resolver := fixedResolver(map[string]time.Time{
		"/media/a.mov": time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	})

	intervals, errs := seqstamps.MapTimeline(clips, rate24, resolver, nil)
	require.Empty(t, errs)
	require.Len(t, intervals, 2)

	assert.Equal(t, seqstamps.CaptionInterval{Start: 0, End: 100, Label: "2024-01-01 10:00:00"}, intervals[0])
	assert.Equal(t, seqstamps.CaptionInterval{Start: 100, End: 150, Label: "[NO-DATE]"}, intervals[1])
}

func TestMapTimeline_OneIntervalPerEnabledClip(t *testing.T) {
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 0, TimelineEnd: 10, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/b.mov", TimelineStart: 10, TimelineEnd: 20, FrameRate: rate24, Enabled: false},
		{SourcePath: "/media/c.mov", TimelineStart: 20, TimelineEnd: 30, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/d.mov", TimelineStart: 30, TimelineEnd: 40, FrameRate: rate24, Enabled: false},
	}

	intervals, errs := seqstamps.MapTimeline(clips, rate24, fixedResolver(nil), nil)
	require.Empty(t, errs)
	assert.Len(t, intervals, 2, spew.Sdump(intervals))
}

func TestMapTimeline_OrderedNonOverlapping(t *testing.T) {
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 50, TimelineEnd: 173, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/b.mov", TimelineStart: 200, TimelineEnd: 260, FrameRate: seqstamps.FrameRate{Num: 30000, Den: 1001}, Enabled: true},
		{SourcePath: "/media/c.mov", TimelineStart: 300, TimelineEnd: 301, FrameRate: seqstamps.FrameRate{Num: 48, Den: 1}, Enabled: true},
	}

	intervals, errs := seqstamps.MapTimeline(clips, rate24, fixedResolver(nil), nil)
	require.Empty(t, errs)
	require.Len(t, intervals, 3)

	assert.Equal(t, int64(50), intervals[0].Start, "cursor seeds from the first clip's timeline start")
	for i := 1; i < len(intervals); i++ {
		assert.Greater(t, intervals[i].Start, intervals[i-1].Start)
		assert.LessOrEqual(t, intervals[i-1].End, intervals[i].Start)
	}
}

func TestMapTimeline_MixedFrameRate(t *testing.T) {
	// 48 native frames at 48fps are one second: 24 frames in a 24fps sequence
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 0, TimelineEnd: 48, FrameRate: seqstamps.FrameRate{Num: 48, Den: 1}, Enabled: true},
	}

	intervals, errs := seqstamps.MapTimeline(clips, rate24, fixedResolver(nil), nil)
	require.Empty(t, errs)
	require.Len(t, intervals, 1)
	assert.Equal(t, int64(24), intervals[0].End-intervals[0].Start)
}

func TestMapTimeline_MalformedClipsSkipped(t *testing.T) {
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 0, TimelineEnd: 10, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/badrate.mov", TimelineStart: 10, TimelineEnd: 20, FrameRate: seqstamps.FrameRate{}, Enabled: true},
		{SourcePath: "/media/empty.mov", TimelineStart: 20, TimelineEnd: 20, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/b.mov", TimelineStart: 20, TimelineEnd: 30, FrameRate: rate24, Enabled: true},
	}

	intervals, errs := seqstamps.MapTimeline(clips, rate24, fixedResolver(nil), nil)
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, seqstamps.ErrMalformedClip)
	}
	require.Len(t, intervals, 2)
	assert.Equal(t, int64(10), intervals[1].Start)
}

func TestMapTimeline_Progress(t *testing.T) {
	clips := []seqstamps.ClipPlacement{
		{SourcePath: "/media/a.mov", TimelineStart: 0, TimelineEnd: 10, FrameRate: rate24, Enabled: true},
		{SourcePath: "/media/b.mov", TimelineStart: 10, TimelineEnd: 20, FrameRate: rate24, Enabled: true},
	}

	var seen []string
	_, errs := seqstamps.MapTimeline(clips, rate24, fixedResolver(nil), func(index, total int, clip seqstamps.ClipPlacement) {
		assert.Equal(t, 2, total)
		seen = append(seen, clip.SourcePath)
	})
	require.Empty(t, errs)
	assert.Equal(t, []string{"/media/a.mov", "/media/b.mov"}, seen)
}

func TestConvertFrames_RoundTrip(t *testing.T) {
	type args struct {
		frames int64
		from   seqstamps.FrameRate
		to     seqstamps.FrameRate
	}

	tests := []args{
		{100, seqstamps.FrameRate{Num: 24, Den: 1}, seqstamps.FrameRate{Num: 25, Den: 1}},
		{48, seqstamps.FrameRate{Num: 48, Den: 1}, seqstamps.FrameRate{Num: 24, Den: 1}},
		{1234, seqstamps.FrameRate{Num: 30000, Den: 1001}, seqstamps.FrameRate{Num: 25, Den: 1}},
		{7, seqstamps.FrameRate{Num: 60000, Den: 1001}, seqstamps.FrameRate{Num: 24, Den: 1}},
	}

	for _, tt := range tests {
		converted := seqstamps.ConvertFrames(tt.frames, tt.from, tt.to)
		back := seqstamps.ConvertFrames(converted, tt.to, tt.from)
		assert.InDelta(t, tt.frames, back, 1, "round trip %d frames %v->%v", tt.frames, tt.from, tt.to)
	}
}

func TestConvertFrames_DayLongTimeline(t *testing.T) {
	// 24 hours at 24fps converts exactly, no intermediate overflow
	frames := int64(24 * 3600 * 24)
	assert.Equal(t, int64(24*3600*25), seqstamps.ConvertFrames(frames, rate24, seqstamps.FrameRate{Num: 25, Den: 1}))

	converted := seqstamps.ConvertFrames(frames, rate24, seqstamps.FrameRate{Num: 30000, Den: 1001})
	back := seqstamps.ConvertFrames(converted, seqstamps.FrameRate{Num: 30000, Den: 1001}, rate24)
	assert.InDelta(t, frames, back, 1)
}

func TestConvertFrames_RoundHalfUp(t *testing.T) {
	// 1 frame at 48fps is half a 24fps frame and rounds up
	assert.Equal(t, int64(1), seqstamps.ConvertFrames(1, seqstamps.FrameRate{Num: 48, Den: 1}, rate24))
	// identical rates pass through untouched
	assert.Equal(t, int64(99), seqstamps.ConvertFrames(99, rate24, rate24))
}
