package gobblet

import "fmt"

// Turn is a single numbered turn in a game record: one move per player.
type Turn struct {
	Number  int64
	First   *Move
	Second  *Move
	Result  string
	Comment string
}

// Text returns a record-notation string of the turn.
func (t *Turn) Text() string {
	var line string
	if t.First != nil && t.Second != nil {
		line = fmt.Sprintf("%d. %s %s", t.Number, t.First.Text, t.Second.Text)
	}

	if t.Comment != "" {
		if line != "" {
			line = fmt.Sprintf("%s { %s }", line, t.Comment)
		} else {
			line = fmt.Sprintf("{ %s }", t.Comment)
		}
	}

	return line
}

// Debug is a verbose dumping of the object and its sub objects.
func (t *Turn) Debug() string {
	return fmt.Sprintf("&{%d 1:%+v 2:%+v Result:%+v Comment: \"%s\"}", t.Number, t.First, t.Second, t.Result, t.Comment)
}
