package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Compiler turns LaTeX source into a binary document.
type Compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
}

// Reason classifies a compilation failure.
type Reason string

const (
	ReasonMissingBinary Reason = "missing-binary"
	ReasonTimeout       Reason = "timeout"
	ReasonFailed        Reason = "failed"
	ReasonNoOutput      Reason = "no-output"
)

// RenderingFailedError reports a toolchain failure. Output holds the tail
// of the toolchain log when available.
type RenderingFailedError struct {
	Reason Reason
	Output string
	Err    error
}

func (e *RenderingFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rendering failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("rendering failed (%s)", e.Reason)
}

func (e *RenderingFailedError) Unwrap() error { return e.Err }

// DefaultTimeout bounds a single toolchain run.
const DefaultTimeout = 5 * time.Second

const (
	texName = "worksheet.tex"
	pdfName = "worksheet.pdf"
	logTail = 2000
)

// PDFLaTeX compiles with a pdflatex-compatible binary in a scratch
// directory that is always removed.
type PDFLaTeX struct {
	// Binary is the executable name or path. Defaults to "pdflatex".
	Binary string

	// Timeout bounds the run. Defaults to DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewPDFLaTeX returns a compiler with the given binary and timeout; empty
// values use the defaults.
func NewPDFLaTeX(binary string, timeout time.Duration, logger *slog.Logger) *PDFLaTeX {
	if binary == "" {
		binary = "pdflatex"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLaTeX{Binary: binary, Timeout: timeout, Logger: logger}
}

func (c *PDFLaTeX) Compile(ctx context.Context, source string) ([]byte, error) {
	bin, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, &RenderingFailedError{Reason: ReasonMissingBinary, Err: err}
	}

	dir, err := os.MkdirTemp("", "mathsheet-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, texName), []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", texName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "-interaction=nonstopmode", "-halt-on-error", texName)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		c.Logger.Error("toolchain timed out", "binary", c.Binary, "timeout", c.Timeout)
		return nil, &RenderingFailedError{Reason: ReasonTimeout, Output: tail(out), Err: ctx.Err()}
	}
	if err != nil {
		c.Logger.Error("toolchain failed", "binary", c.Binary, "error", err)
		return nil, &RenderingFailedError{Reason: ReasonFailed, Output: tail(out), Err: err}
	}

	pdf, err := os.ReadFile(filepath.Join(dir, pdfName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Logger.Error("toolchain produced no output", "binary", c.Binary)
			return nil, &RenderingFailedError{Reason: ReasonNoOutput, Output: tail(out)}
		}
		return nil, fmt.Errorf("read %s: %w", pdfName, err)
	}
	return pdf, nil
}

func tail(b []byte) string {
	if len(b) > logTail {
		b = b[len(b)-logTail:]
	}
	return string(b)
}
