// Package console renders the three output devices to a terminal so the
// pipeline can run on a machine without the greenhouse hardware.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	lcdStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("10"))

	segmentStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("9")).
			Bold(true)

	matrixOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("██")
	matrixOff = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Render("░░")
)

// Text mimics the 16x2 character LCD.
type Text struct {
	out io.Writer
}

// NewText creates a console LCD writing to out.
func NewText(out io.Writer) *Text {
	return &Text{out: out}
}

func (d *Text) Clear() error {
	return nil
}

func (d *Text) WriteLines(lines ...string) error {
	_, err := fmt.Fprintln(d.out, lcdStyle.Render(strings.Join(lines, "\n")))
	return err
}

// Matrix mimics the 8x8 LED matrix.
type Matrix struct {
	out io.Writer
}

// NewMatrix creates a console matrix writing to out.
func NewMatrix(out io.Writer) *Matrix {
	return &Matrix{out: out}
}

func (d *Matrix) DrawBitmap(bitmap [8]byte) error {
	var b strings.Builder
	for _, row := range bitmap {
		for x := 0; x < 8; x++ {
			if row&(1<<(7-x)) != 0 {
				b.WriteString(matrixOn)
			} else {
				b.WriteString(matrixOff)
			}
		}
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(d.out, b.String())
	return err
}

// Segment mimics the 4-digit seven-segment display.
type Segment struct {
	out io.Writer
}

// NewSegment creates a console segment display writing to out.
func NewSegment(out io.Writer) *Segment {
	return &Segment{out: out}
}

func (d *Segment) Clear() error {
	return nil
}

func (d *Segment) Print(s string) error {
	_, err := fmt.Fprintln(d.out, segmentStyle.Render(s))
	return err
}
