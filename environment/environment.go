package environment

import (
	"os"
	"strconv"
	"time"
)

var exiftoolPath = os.Getenv("SEQSTAMPS_EXIFTOOL")

// GetExiftoolPath returns the exiftool binary to invoke. Override for
// non-PATH installs or test shims.
func GetExiftoolPath() string {
	if exiftoolPath != "" {
		return exiftoolPath
	}
	return "exiftool"
}

var exiftoolTimeout = os.Getenv("SEQSTAMPS_EXIFTOOL_TIMEOUT")

// GetExiftoolTimeout returns the per-invocation timeout in seconds. Expiry is
// treated as missing metadata, not as a failure.
func GetExiftoolTimeout() time.Duration {
	if s, err := strconv.Atoi(exiftoolTimeout); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	return 30 * time.Second
}

var captionTZ = os.Getenv("SEQSTAMPS_TZ")

// GetLocation returns the timezone captions are rendered in. Defaults to the
// machine's local zone, the same zone the edit was most likely made in.
func GetLocation() *time.Location {
	if captionTZ != "" {
		if loc, err := time.LoadLocation(captionTZ); err == nil {
			return loc
		}
	}
	return time.Local
}
