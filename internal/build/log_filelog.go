//go:build filelog
// +build filelog

package build

import (
	"os"

	"github.com/jrick/logrotate/rotator"
)

// LoggingType reports which sink NewDefaultWriter will use.
const LoggingType = "filelog"

// defaultLogFile is the file every binary logs to in a filelog build;
// no binary's config overrides this path.
const defaultLogFile = "shardwallet.log"

// NewDefaultWriter rotates log output to defaultLogFile at 10MiB, keeping
// 3 historical files, the same thresholds the teacher's build package
// uses for dcrlnd.log.
func NewDefaultWriter() *RotatingLogWriter {
	r, err := rotator.New(defaultLogFile, 10*1024, false, 3)
	if err != nil {
		// Rotation setup failing this early means the filesystem is
		// unusable; fall back to stderr rather than taking the
		// process down before flags have even been parsed.
		return NewRotatingLogWriter(os.Stderr)
	}
	return NewRotatingLogWriter(r)
}
