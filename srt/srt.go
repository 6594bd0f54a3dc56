// Package srt renders caption cues into SubRip text.
package srt

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ansel1/merry/v2"
)

// Cue is one subtitle entry. Start and End are sequence frame offsets;
// conversion to wall time happens at render using the sequence frame rate.
type Cue struct {
	Start int64
	End   int64
	Text  string
}

// Timecode converts a frame offset to an SRT timecode, HH:MM:SS,mmm.
// Total milliseconds are truncated, not rounded, so a cue boundary never
// lands after the frame it belongs to.
func Timecode(frames int64, fps float64) string {
	ms := int64(math.Floor(float64(frames) * 1000.0 / fps))
	h := ms / 3600000
	m := ms % 3600000 / 60000
	s := ms % 60000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// Render produces the full SRT document: 1-based index, timecode line, text
// line, blank separator.
func Render(cues []Cue, fps float64) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, Timecode(cue.Start, fps), Timecode(cue.End, fps), cue.Text)
	}
	return b.String()
}

func WriteFile(path string, cues []Cue, fps float64) error {
	if err := os.WriteFile(path, []byte(Render(cues, fps)), 0644); err != nil {
		return merry.Prepend(err, "write srt")
	}
	return nil
}
