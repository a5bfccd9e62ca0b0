//go:build !filelog
// +build !filelog

package build

// LoggingType reports which sink NewDefaultWriter will use. The default
// build logs to stdout only; build with -tags filelog to rotate to a file
// instead (see log_filelog.go), mirroring the teacher's toggle.
const LoggingType = "stdout"

// NewDefaultWriter returns a RotatingLogWriter that writes to stdout.
func NewDefaultWriter() *RotatingLogWriter {
	return NewRotatingLogWriter(StdoutWriter())
}
