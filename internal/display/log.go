package display

import (
	"fmt"
	"io"
)

// Console prints human-readable status lines. Colors are applied only when
// enabled, so output captured in files and tests stays plain.
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

func (c *Console) paint(codes, s string) string {
	if !c.color || codes == "" {
		return s
	}
	return codes + s + reset
}

// Println prints msg unchanged.
func (c *Console) Println(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Success prints a green success message.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(bold+brightGreen, "✓"), msg)
}

// Warn prints a yellow warning message.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(bold+brightYellow, "⚠"), c.paint(yellow, msg))
}

// Error prints a red error message.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.paint(bold+brightRed, "✗"), c.paint(red, msg))
}
