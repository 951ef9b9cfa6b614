package husk

import (
	"fmt"
	"strings"
)

// SyntaxError is a fatal parse failure. It carries the position of the
// failure and the token the parser expected there.
type SyntaxError struct {
	Filename string
	Offset   int
	Line     int // 1-based
	Column   int // 1-based, in runes
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Filename != "" {
		pos = e.Filename + ":" + pos
	}
	return fmt.Sprintf("%s: expected %s, found %s", pos, e.Expected, e.Found)
}

// UndefinedVariableError aborts evaluation when a name has no binding.
type UndefinedVariableError struct {
	Name Ident
}

func (e UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// NotCallableError aborts evaluation when a call's callee is neither a
// user function nor a native one.
type NotCallableError struct {
	Val Value
}

func (e NotCallableError) Error() string {
	return fmt.Sprintf("called a non-function: %s", e.Val)
}

// Excerpt renders the error with the offending source line and a caret
// underline, suitable for terminal output.
func (e *SyntaxError) Excerpt(source string) string {
	const (
		red   = "\033[31m"
		blue  = "\033[34m"
		bold  = "\033[1m"
		reset = "\033[0m"
		dim   = "\033[2m"
	)

	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return e.Error()
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("%s%sError:%s expected %s, found %s\n",
		bold, red, reset, e.Expected, e.Found))
	result.WriteString(fmt.Sprintf("  %s%s--> %s:%d:%d%s\n",
		dim, blue, e.Filename, e.Line, e.Column, reset))

	start := max(1, e.Line-2)
	end := min(len(lines), e.Line+2)

	for i := start; i <= end; i++ {
		lineno := padLeft(fmt.Sprintf("%d", i), 3)
		if i == e.Line {
			result.WriteString(fmt.Sprintf(" %s%s%s%s | %s%s\n",
				dim, blue, bold, lineno, reset, lines[i-1]))
			padding := strings.Repeat(" ", 1+3+3+e.Column-1)
			result.WriteString(fmt.Sprintf("%s%s^%s\n", padding, red, reset))
		} else {
			result.WriteString(fmt.Sprintf(" %s%s | %s%s\n",
				dim, lineno, lines[i-1], reset))
		}
	}

	return result.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// position converts a byte offset into a 1-based line and rune column.
func position(src string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
