// Package fcp7 reads Final Cut Pro 7 XMEML project files and extracts clip
// placements from the first video track. Only the elements this tool consumes
// are modeled; everything else in the document is ignored.
package fcp7

import (
	"encoding/xml"
	"io"

	"github.com/ansel1/merry/v2"

	"github.com/mediatools/seqstamps"
	"github.com/mediatools/seqstamps/paths"
)

var (
	ErrParse        = merry.Sentinel("unable to parse project file")
	ErrNoSequence   = merry.Sentinel("no sequence in project file")
	ErrNoVideoTrack = merry.Sentinel("no video track in sequence")
)

type Xmeml struct {
	XMLName  xml.Name   `xml:"xmeml"`
	Version  string     `xml:"version,attr"`
	Sequence []Sequence `xml:"sequence"`
	Project  []Project  `xml:"project"`
}

// Project wraps sequences exported inside a project/bin hierarchy rather than
// at the document root.
type Project struct {
	Name     string     `xml:"name"`
	Children []Sequence `xml:"children>sequence"`
}

type Sequence struct {
	Name  string `xml:"name"`
	Rate  Rate   `xml:"rate"`
	Media Media  `xml:"media"`
}

// Rate is XMEML's frame rate element: an integer timebase plus an NTSC flag
// ("TRUE" means the real rate is the 1001-denominator neighbour).
type Rate struct {
	Timebase int  `xml:"timebase"`
	NTSC     bool `xml:"ntsc"`
}

type Media struct {
	Video *Video `xml:"video"`
}

type Video struct {
	Track []Track `xml:"track"`
}

type Track struct {
	ClipItem []ClipItem `xml:"clipitem"`
}

type ClipItem struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name"`
	Enabled *bool  `xml:"enabled"`
	Start   int64  `xml:"start"`
	End     int64  `xml:"end"`
	Rate    Rate   `xml:"rate"`
	File    *File  `xml:"file"`
}

type File struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name"`
	PathURL string `xml:"pathurl"`
	Rate    Rate   `xml:"rate"`
}

func Parse(r io.Reader) (*Xmeml, error) {
	var doc Xmeml
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, merry.Prepend(ErrParse, err.Error())
	}
	return &doc, nil
}

func (doc *Xmeml) firstSequence() *Sequence {
	if len(doc.Sequence) > 0 {
		return &doc.Sequence[0]
	}
	for i := range doc.Project {
		if len(doc.Project[i].Children) > 0 {
			return &doc.Project[i].Children[0]
		}
	}
	return nil
}

// SequenceRate returns the sequence's frame rate, defaulting to 25 fps when
// the document does not declare one.
func SequenceRate(doc *Xmeml) seqstamps.FrameRate {
	seq := doc.firstSequence()
	if seq == nil || seq.Rate.Timebase <= 0 {
		return seqstamps.FrameRate{Num: 25, Den: 1}
	}
	return seqstamps.NewFrameRate(seq.Rate.Timebase, seq.Rate.NTSC)
}

// GatherClips walks the first video track and returns its enabled clip items
// as placements, in document order. The track's declared order is trusted;
// out-of-order items should surface downstream rather than be silently
// re-sorted here.
//
// Items that cannot yield a placement (no file path, no usable frame span,
// undecodable pathurl) are skipped and reported through the second return
// value. Only a missing sequence or video track is a hard error.
func GatherClips(doc *Xmeml) ([]seqstamps.ClipPlacement, []error, error) {
	seq := doc.firstSequence()
	if seq == nil {
		return nil, nil, merry.Wrap(ErrNoSequence)
	}
	if seq.Media.Video == nil || len(seq.Media.Video.Track) == 0 {
		return nil, nil, merry.Wrap(ErrNoVideoTrack)
	}

	seqRate := SequenceRate(doc)
	track := seq.Media.Video.Track[0]

	var clips []seqstamps.ClipPlacement
	var warnings []error

	for _, item := range track.ClipItem {
		if item.Enabled != nil && !*item.Enabled {
			continue
		}
		if item.File == nil || item.File.PathURL == "" {
			warnings = append(warnings, merry.Prepend(seqstamps.ErrMalformedClip, "no file path for "+itemLabel(item)))
			continue
		}
		if item.Start < 0 || item.End <= item.Start {
			warnings = append(warnings, merry.Prepend(seqstamps.ErrMalformedClip, "no usable frame span for "+itemLabel(item)))
			continue
		}

		path, err := paths.URLToPath(item.File.PathURL)
		if err != nil {
			warnings = append(warnings, merry.Prepend(seqstamps.ErrMalformedClip, err.Error()))
			continue
		}

		clips = append(clips, seqstamps.ClipPlacement{
			SourcePath:    path,
			Name:          clipName(item),
			TimelineStart: item.Start,
			TimelineEnd:   item.End,
			FrameRate:     clipRate(item, seqRate),
			Enabled:       true,
		})
	}

	return clips, warnings, nil
}

// clipRate picks the source rate: the referenced file's own rate, then the
// clip item's, then the sequence's.
func clipRate(item ClipItem, seqRate seqstamps.FrameRate) seqstamps.FrameRate {
	if item.File != nil && item.File.Rate.Timebase > 0 {
		return seqstamps.NewFrameRate(item.File.Rate.Timebase, item.File.Rate.NTSC)
	}
	if item.Rate.Timebase > 0 {
		return seqstamps.NewFrameRate(item.Rate.Timebase, item.Rate.NTSC)
	}
	return seqRate
}

func clipName(item ClipItem) string {
	if item.File != nil && item.File.Name != "" {
		return item.File.Name
	}
	return item.Name
}

func itemLabel(item ClipItem) string {
	if item.Name != "" {
		return item.Name
	}
	if item.ID != "" {
		return item.ID
	}
	return "unnamed clipitem"
}
