package exiftool

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04-0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDate parses an exiftool-formatted date string. Timezone-naive values
// are assumed UTC (QuickTime dates are stored as UTC); the result is shifted
// into loc for display.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.UTC)
		if err != nil {
			continue
		}
		return t.In(loc), true
	}
	return time.Time{}, false
}

// isZeroDate reports whether exiftool emitted one of its placeholder dates
// for a file with no real timestamp.
func isZeroDate(raw string) bool {
	return strings.HasPrefix(raw, "0000")
}

// Screen recordings and phone exports often carry the capture time in the
// filename. Two shapes are recognized, both minute precision:
// "2025-09-29 22-51-34" style (year first) and
// "ScreenRecording_10-01-2025 07-20-37" style (month first).
var (
	yearFirstPattern  = regexp.MustCompile(`(20\d{2})[-_](\d{2})[-_](\d{2})[ _](\d{2})[:.-](\d{2})[:.-](\d{2})`)
	monthFirstPattern = regexp.MustCompile(`(\d{2})-(\d{2})-(20\d{2})[ _](\d{2})-(\d{2})-(\d{2})`)
)

func dateFromFilename(path string, loc *time.Location) (time.Time, bool) {
	name := filepath.Base(path)

	if m := yearFirstPattern.FindStringSubmatch(name); m != nil {
		return filenameTime(m[1], m[2], m[3], m[4], m[5], loc), true
	}
	if m := monthFirstPattern.FindStringSubmatch(name); m != nil {
		return filenameTime(m[3], m[1], m[2], m[4], m[5], loc), true
	}
	return time.Time{}, false
}

func filenameTime(year, month, day, hour, minute string, loc *time.Location) time.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	mi, _ := strconv.Atoi(minute)
	return time.Date(y, time.Month(mo), d, h, mi, 0, 0, time.UTC).In(loc)
}
