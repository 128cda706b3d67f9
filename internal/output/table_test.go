package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("ID", "COMPONENT", "RESULT").
		Row("1", "C1", StatusSuccessful).
		Row("2", "C2", StatusFaulty).
		StatusColumn(2)

	assert.Equal(t, 2, tbl.Len())

	out := tbl.String()
	for _, s := range []string{"ID", "COMPONENT", "RESULT", "C1", "C2", StatusSuccessful, StatusFaulty} {
		assert.Contains(t, out, s)
	}
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable("ID")
	assert.Zero(t, tbl.Len())
	assert.Contains(t, tbl.String(), "ID")
}
