// Package vulnscan bridges the external vulnerability scanner. The scanner
// is a black box that writes tag-prefixed progress lines to stdout and
// signals overall success through its exit code; this package classifies the
// stream line by line and passes the exit status through without parsing the
// scanner's findings.
package vulnscan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LineClass is the classification of one scanner output line by its leading
// tag.
type LineClass int

const (
	LinePlain LineClass = iota
	LineSuccess
	LineError
	LineWarning
	LineInfo
)

func (c LineClass) String() string {
	switch c {
	case LineSuccess:
		return "success"
	case LineError:
		return "error"
	case LineWarning:
		return "warning"
	case LineInfo:
		return "info"
	default:
		return "plain"
	}
}

// ClassifyLine maps a scanner output line to its class by leading tag:
// [+] success, [-] error, [!] warning, [*] info, anything else plain.
// Leading whitespace is ignored; the tag must be at the start of the line.
func ClassifyLine(line string) LineClass {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(trimmed, "[+]"):
		return LineSuccess
	case strings.HasPrefix(trimmed, "[-]"):
		return LineError
	case strings.HasPrefix(trimmed, "[!]"):
		return LineWarning
	case strings.HasPrefix(trimmed, "[*]"):
		return LineInfo
	default:
		return LinePlain
	}
}

// Runner launches the external scanner for one target.
type Runner struct {
	Command string   // scanner executable
	Args    []string // extra arguments placed before the target
	Timeout time.Duration
}

// Result summarizes one scanner run.
type Result struct {
	ExitCode int
	Lines    int
	ByClass  map[LineClass]int
	Elapsed  time.Duration
}

// Run executes the scanner against the target URL, invoking onLine for each
// classified output line as it arrives. The returned error is non-nil only
// when the scanner could not be launched or was cut off; a nonzero scanner
// exit code is reported through Result.ExitCode, not as an error.
func (r *Runner) Run(ctx context.Context, targetURL string, onLine func(LineClass, string)) (Result, error) {
	result := Result{ByClass: map[LineClass]int{}}

	if r.Command == "" {
		return result, errors.New("scanner command not configured")
	}
	if _, err := exec.LookPath(r.Command); err != nil {
		return result, fmt.Errorf("scanner launch: %w", err)
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.Args...), targetURL)
	cmd := exec.CommandContext(runCtx, r.Command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return result, fmt.Errorf("scanner launch: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("scanner launch: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		class := ClassifyLine(line)
		result.Lines++
		result.ByClass[class]++
		if onLine != nil {
			onLine(class, line)
		}
	}

	err = cmd.Wait()
	result.Elapsed = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("scanner run: %w", err)
	}
	if runCtx.Err() != nil {
		return result, fmt.Errorf("scanner run: %w", runCtx.Err())
	}
	return result, nil
}
