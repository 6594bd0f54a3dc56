// Package exiftool resolves media capture timestamps by invoking exiftool
// once per distinct file. Resolution never fails: any tool error, timeout or
// unusable output degrades to the unknown sentinel so one bad file never
// aborts a run.
package exiftool

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/samber/lo"

	"github.com/mediatools/seqstamps"
	"github.com/mediatools/seqstamps/cache"
	"github.com/mediatools/seqstamps/environment"
	"github.com/mediatools/seqstamps/utils"
)

// dateTags in priority order, spelled as group-qualified request arguments.
// QuickTime creation dates first, Apple Keys and filesystem dates as
// fallbacks. exiftool's JSON output keys carry no group prefix, so lookups go
// through bareName; all seven tags have distinct bare names.
var dateTags = []string{
	"QuickTime:CreateDate",
	"QuickTime:MediaCreateDate",
	"QuickTime:TrackCreateDate",
	"QuickTime:ModifyDate",
	"Keys:CreationDate",
	"System:FileCreateDate",
	"System:FileModifyDate",
}

// RunFunc executes the metadata tool for one file and returns its field
// mapping. Injectable so tests can substitute fixed output.
type RunFunc func(path string) (map[string]string, error)

type Resolver struct {
	loc *time.Location
	run RunFunc
}

func NewResolver() *Resolver {
	return NewResolverWithRun(environment.GetLocation(), runExiftool)
}

func NewResolverWithRun(loc *time.Location, run RunFunc) *Resolver {
	return &Resolver{loc: loc, run: run}
}

// Resolve returns the capture timestamp for path, memoized for the run so a
// file referenced by several clips is only probed once.
func (r *Resolver) Resolve(path string) seqstamps.ResolvedTimestamp {
	ts, err := cache.GetOrSet("exiftool:"+path, func() (*seqstamps.ResolvedTimestamp, error) {
		t := r.resolve(path)
		return &t, nil
	})
	if err != nil {
		return seqstamps.Unknown()
	}
	return *ts
}

func (r *Resolver) resolve(path string) seqstamps.ResolvedTimestamp {
	fields, err := r.run(path)
	if err == nil {
		for _, tag := range dateTags {
			raw := fields[bareName(tag)]
			if raw == "" || isZeroDate(raw) {
				continue
			}
			t, ok := parseDate(raw, r.loc)
			if !ok {
				continue
			}
			source := seqstamps.DateSourceEmbedded
			if strings.HasPrefix(tag, "System:") {
				source = seqstamps.DateSourceFilesystem
			}
			return seqstamps.ResolvedTimestamp{Time: t, Source: source, Known: true}
		}
	}

	if t, ok := dateFromFilename(path, r.loc); ok {
		return seqstamps.ResolvedTimestamp{Time: t, Source: seqstamps.DateSourceFilename, Known: true}
	}

	return seqstamps.Unknown()
}

// bareName strips the group qualifier from a request tag, yielding the key
// exiftool uses in its JSON output.
func bareName(tag string) string {
	_, name, _ := strings.Cut(tag, ":")
	return name
}

func runExiftool(path string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), environment.GetExiftoolTimeout())
	defer cancel()

	args := []string{
		"-j",
		"-api", "largefilesupport=1",
		"-api", "QuickTimeUTC=1",
		"-d", "%Y-%m-%d %H:%M:%S%z",
	}
	args = append(args, lo.Map(dateTags, func(tag string, _ int) string { return "-" + tag })...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, environment.GetExiftoolPath(), args...)
	out, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, merry.Prepend(err, "exiftool failed for "+path)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		return nil, merry.Prepend(err, "unexpected exiftool output for "+path)
	}
	if len(records) == 0 {
		return nil, merry.New("empty exiftool output for " + path)
	}

	fields := map[string]string{}
	for k, v := range records[0] {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return fields, nil
}
