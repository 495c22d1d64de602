package san

import (
	"io"
	"strings"
)

// TreeRoot is the label printed on the first line of every tree.
const TreeRoot = "Partida"

const (
	branchMid   = "├── "
	branchLast  = "└── "
	indentOpen  = "│   "
	indentBlank = "    "
)

// RenderTree returns the variation tree of turns as text, one line per node,
// each terminated by a newline.
//
// Every turn hangs off its predecessor: white on a branch, black one level
// deeper, and the next turn below black (or below white when black is
// absent). When there is more than one turn, the continuation from the second
// turn is drawn once more as a closing branch of the root.
//
// Example:
//
//	fmt.Print(RenderTree(ledger.Turns()))
//	// Partida
//	// ├── e4
//	// │   └── e5
//	// │       ├── Nf3
//	// └── Nf3
func RenderTree(turns []Turn) string {
	var sb strings.Builder
	for _, line := range TreeLines(turns) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTree writes the tree of turns to w.
func WriteTree(w io.Writer, turns []Turn) error {
	_, err := io.WriteString(w, RenderTree(turns))
	return err
}

// TreeLines returns the lines of the tree of turns without line terminators.
func TreeLines(turns []Turn) []string {
	lines := []string{TreeRoot}
	if len(turns) == 0 {
		return lines
	}

	lines = writeBranch(lines, turns, 0, "", len(turns) == 1)

	// The closing branch replays the continuation from the second turn at
	// the root's indentation.
	if len(turns) > 1 {
		lines = writeBranch(lines, turns, 1, "", true)
	}
	return lines
}

// writeBranch appends the line for turns[depth] and everything that follows
// it. prefix holds the indentation inherited from the ancestors and isLast
// selects the connector drawn for white.
func writeBranch(lines []string, turns []Turn, depth int, prefix string, isLast bool) []string {
	if depth >= len(turns) {
		return lines
	}
	t := turns[depth]

	connector := branchMid
	if isLast {
		connector = branchLast
	}
	lines = append(lines, prefix+connector+t.White)

	if !t.HasBlack() {
		return writeBranch(lines, turns, depth+1, prefix+indentOpen, false)
	}

	blackPrefix := prefix + indentOpen
	if isLast {
		blackPrefix = prefix + indentBlank
	}
	lines = append(lines, blackPrefix+branchLast+t.Black)
	return writeBranch(lines, turns, depth+1, blackPrefix+indentBlank, false)
}
