package main

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/mediatools/seqstamps"
	"github.com/mediatools/seqstamps/paths"
	"github.com/mediatools/seqstamps/services/exiftool"
	"github.com/mediatools/seqstamps/services/fcp7"
	"github.com/mediatools/seqstamps/srt"
)

const (
	exitUsage     = 1
	exitStructure = 2
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <sequence.xml>\n", os.Args[0])
		os.Exit(exitUsage)
	}
	xmlPath := os.Args[1]

	f, err := os.Open(xmlPath)
	if err != nil {
		logger.Error().Err(err).Msg("unable to read project file")
		os.Exit(exitStructure)
	}
	doc, err := fcp7.Parse(f)
	_ = f.Close()
	if err != nil {
		logger.Error().Err(err).Str("file", xmlPath).Msg("unable to parse project file")
		os.Exit(exitStructure)
	}

	seqRate := fcp7.SequenceRate(doc)

	clips, warnings, err := fcp7.GatherClips(doc)
	if err != nil {
		logger.Error().Err(err).Str("file", xmlPath).Msg("no usable video track")
		os.Exit(exitStructure)
	}
	for _, w := range warnings {
		logger.Warn().Msg(w.Error())
	}
	if len(clips) == 0 {
		logger.Error().Msg("no clips found on the first video track")
		os.Exit(exitStructure)
	}

	resolver := exiftool.NewResolver()
	files := mapset.NewSet[string]()

	intervals, clipErrs := seqstamps.MapTimeline(clips, seqRate, resolver, func(index, total int, clip seqstamps.ClipPlacement) {
		files.Add(clip.SourcePath)
		logger.Info().
			Int("clip", index).
			Int("total", total).
			Str("file", clip.SourcePath).
			Msg("processed clip")
	})
	for _, e := range clipErrs {
		logger.Warn().Msg(e.Error())
	}

	outPath := paths.TimestampOutputPath(xmlPath)
	cues := lo.Map(intervals, func(iv seqstamps.CaptionInterval, _ int) srt.Cue {
		return srt.Cue{Start: iv.Start, End: iv.End, Text: iv.Label}
	})

	if err := srt.WriteFile(outPath, cues, seqRate.Float()); err != nil {
		logger.Error().Err(err).Str("output", outPath).Msg("unable to write caption file")
		os.Exit(exitStructure)
	}

	logger.Info().
		Int("cues", len(cues)).
		Int("files", files.Cardinality()).
		Str("fps", seqRate.String()).
		Str("output", outPath).
		Msg("wrote caption file")
}
