// Package report prints run progress and diagnostics. It is the single
// place where quiet, debug and color settings are honored.
package report

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Printer writes progress to out and diagnostics to errOut.
type Printer struct {
	out    *termenv.Output
	errOut *termenv.Output
	quiet  bool
	debug  bool
}

// New creates a Printer. With ColorAuto, color is used only when the
// destination is a terminal that supports it.
func New(out, errOut io.Writer, mode ColorMode, quiet, debug bool) *Printer {
	var opts []termenv.OutputOption
	switch mode {
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Printer{
		out:    termenv.NewOutput(out, opts...),
		errOut: termenv.NewOutput(errOut, opts...),
		quiet:  quiet,
		debug:  debug,
	}
}

// Progress reports one completed item. Suppressed in quiet mode.
func (p *Printer) Progress(done, total int, name string) {
	if p.quiet {
		return
	}
	counter := p.out.String(fmt.Sprintf("(%d/%d)", done, total)).Foreground(termenv.ANSICyan)
	fmt.Fprintf(p.out, "%s %s\n", counter, name)
}

// Infof prints a plain informational line. Suppressed in quiet mode.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf prints a green summary line. Suppressed in quiet mode.
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	msg := p.out.String(fmt.Sprintf(format, args...)).Foreground(termenv.ANSIGreen)
	fmt.Fprintf(p.out, "%s\n", msg)
}

// Warnf reports a recoverable problem (a skipped item or attachment).
// Warnings go to stderr and are not suppressed by quiet mode.
func (p *Printer) Warnf(format string, args ...any) {
	msg := p.errOut.String("warning: "+fmt.Sprintf(format, args...)).Foreground(termenv.ANSIYellow)
	fmt.Fprintf(p.errOut, "%s\n", msg)
}

// Errorf reports a fatal problem.
func (p *Printer) Errorf(format string, args ...any) {
	msg := p.errOut.String("error: "+fmt.Sprintf(format, args...)).Foreground(termenv.ANSIRed)
	fmt.Fprintf(p.errOut, "%s\n", msg)
}

// Debugf traces internals (subprocess invocations, skip decisions).
// Printed only with debug enabled.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.debug {
		return
	}
	msg := p.errOut.String("debug: "+fmt.Sprintf(format, args...)).Faint()
	fmt.Fprintf(p.errOut, "%s\n", msg)
}
