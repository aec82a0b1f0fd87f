package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Render(t *testing.T) {
	table := NewTable("JOB", "RESULT")
	table.AddRow("job-0", "ok")
	table.AddRow("a-much-longer-name", "<no result>")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Border, header, separator, two rows, border.
	assert.Len(t, lines, 6)
	assert.Contains(t, out, "JOB")
	assert.Contains(t, out, "a-much-longer-name")

	// All lines are padded to the same width.
	for _, line := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(line)))
	}
}

func TestTable_MismatchedRowIgnored(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only-one-cell")

	assert.NotContains(t, table.Render(), "only-one-cell")
}

func TestMessageBox(t *testing.T) {
	out := MessageBox(ErrorMessage, "Batch aborted", "job 2 failed")
	assert.Contains(t, out, "Batch aborted")
	assert.Contains(t, out, "job 2 failed")

	assert.Contains(t, MessageBox(SuccessMessage, "Done"), "Done")
}
