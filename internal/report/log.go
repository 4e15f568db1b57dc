package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScanLog is the append-only per-scan text log. It receives the same textual
// content shown to the user; nothing machine-parses it.
type ScanLog struct {
	file *os.File
	Path string
}

// OpenScanLog creates `<target>_<timestamp>.log` under dir, creating the
// directory if needed.
func OpenScanLog(dir, target string) (*ScanLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.log", sanitizeFilename(target), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open scan log: %w", err)
	}
	return &ScanLog{file: file, Path: path}, nil
}

// Write appends raw text to the log.
func (l *ScanLog) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

// WriteLine appends one line.
func (l *ScanLog) WriteLine(line string) {
	fmt.Fprintln(l.file, line)
}

func (l *ScanLog) Close() error {
	return l.file.Close()
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		default:
			return '_'
		}
	}, s)
}
