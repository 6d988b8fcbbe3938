// Package console is the boundary to the terminal: line prompts,
// hidden password entry, and the single-letter selection loop every
// menu runs on. All input and output flows through an injected
// reader/writer pair so flows can be driven by scripted input.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
	tty *os.File // set when input is a real terminal file
	eof bool
}

func New(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		c.tty = f
	}
	return c
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Prompt prints the label and reads one line, trimming the trailing
// newline. Exhausted input reads as an empty line.
func (c *Console) Prompt(label string) string {
	fmt.Fprint(c.out, label)
	return c.readLine()
}

// PromptSecret reads a line without echo when the input is a
// terminal. Off a terminal (tests, pipes) it degrades to a plain
// line read.
func (c *Console) PromptSecret(label string) string {
	fmt.Fprint(c.out, label)
	if c.tty != nil && terminal.IsTerminal(int(c.tty.Fd())) {
		pw, err := terminal.ReadPassword(int(c.tty.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return ""
		}
		return string(pw)
	}
	return c.readLine()
}

// Select runs the menu selection loop: read, lowercase, and re-prompt
// until the input is one of the given values. Every transition is
// total — unrecognized input self-loops with a fixed message. When
// input is exhausted the last value is returned, which by convention
// is the menu's exit command, so the program unwinds cleanly.
func (c *Console) Select(values ...string) string {
	for {
		if c.eof {
			return values[len(values)-1]
		}
		sel := strings.ToLower(c.Prompt("Select: "))
		for _, v := range values {
			if sel == v {
				return sel
			}
		}
		c.Println("Invalid input. Please try again.")
	}
}

// Exhausted reports whether input has hit end of file. Re-prompt
// loops check it so they cannot spin once input is gone.
func (c *Console) Exhausted() bool {
	return c.eof
}

func (c *Console) readLine() string {
	line, err := c.in.ReadString('\n')
	if err != nil {
		c.eof = true
	}
	return strings.TrimRight(line, "\r\n")
}

// Center pads s to width with spaces on both sides, the extra space
// going to the right. Table columns rely on that exact bias.
func Center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
