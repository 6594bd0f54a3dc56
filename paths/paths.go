package paths

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry/v2"
)

var ErrPathNotValid = merry.Sentinel("path not valid")

// URLToPath converts an XMEML pathurl to a local filesystem path. FCP7 writes
// file:// URLs with percent-encoded names; anything without a file scheme is
// passed through untouched.
func URLToPath(pathurl string) (string, error) {
	if !strings.HasPrefix(pathurl, "file://") {
		return pathurl, nil
	}
	u, err := url.Parse(pathurl)
	if err != nil {
		return "", merry.Prepend(err, "invalid pathurl")
	}
	if u.Path == "" {
		return "", merry.Prepend(ErrPathNotValid, pathurl)
	}
	return u.Path, nil
}

// TimestampOutputPath returns the caption file path for a project file:
// same directory, "timestamps_" prefix, ".srt" extension.
func TimestampOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), "timestamps_"+base+".srt")
}
