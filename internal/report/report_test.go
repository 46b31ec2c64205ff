package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/montecarlo/internal/report"
)

type staticFrame struct {
	cols []string
	recs [][]string
}

func (f staticFrame) Columns() []string   { return f.cols }
func (f staticFrame) Records() [][]string { return f.recs }

var combos = staticFrame{
	cols: []string{"Combination", "Count"},
	recs: [][]string{{"(H, H)", "3"}, {"(H, T)", "1"}},
}

func TestNewRenderer_UnknownOutput(t *testing.T) {
	_, err := report.NewRenderer(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}

func TestFrame_Table(t *testing.T) {
	var buf bytes.Buffer
	r, err := report.NewRenderer(&buf, report.OutputTable)
	require.NoError(t, err)
	require.NoError(t, r.Frame("Combinations", combos))

	out := buf.String()
	assert.Contains(t, out, "Combinations")
	assert.Contains(t, out, "Combination")
	assert.Contains(t, out, "(H, H)")
	assert.Contains(t, out, "(H, T)")
}

func TestFrame_CSV(t *testing.T) {
	var buf bytes.Buffer
	r, err := report.NewRenderer(&buf, report.OutputCSV)
	require.NoError(t, err)
	require.NoError(t, r.Frame("Combinations", combos))
	assert.Equal(t, "# Combinations\nCombination,Count\n\"(H, H)\",3\n\"(H, T)\",1\n\n", buf.String())
}

// TestJackpot_GroupsThousands verifies counts are formatted with digit grouping.
func TestJackpot_GroupsThousands(t *testing.T) {
	var buf bytes.Buffer
	r, err := report.NewRenderer(&buf, report.OutputCSV)
	require.NoError(t, err)
	require.NoError(t, r.Jackpot(1250, 10000))
	assert.Equal(t, "# Jackpots: 1,250 of 10,000 rolls (12.50%)\n\n", buf.String())
}
