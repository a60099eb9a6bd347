package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// printer writes status lines, colored only when w is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &printer{w: w, color: color}
}

func (p *printer) paint(colors text.Colors, s string) string {
	if !p.color {
		return s
	}
	return colors.Sprint(s)
}

func (p *printer) header(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(text.Colors{text.Bold, text.FgCyan}, "\n=== "+fmt.Sprintf(format, args...)+" ==="))
}

func (p *printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(text.Colors{text.FgGreen}, "[✓] "+fmt.Sprintf(format, args...)))
}

func (p *printer) warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(text.Colors{text.FgYellow}, "[!] "+fmt.Sprintf(format, args...)))
}

func (p *printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(text.Colors{text.FgBlue}, "[i] "+fmt.Sprintf(format, args...)))
}

func (p *printer) block(s string) {
	fmt.Fprintln(p.w, s)
}
