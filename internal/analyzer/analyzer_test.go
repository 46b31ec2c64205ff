package analyzer_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/montecarlo/internal/analyzer"
	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
)

var (
	heads = dice.Text("H")
	tails = dice.Text("T")
)

type helperT interface {
	require.TestingT
	Helper()
}

// loadedCoin returns a coin that always lands on face.
func loadedCoin(t helperT, face dice.Face) *dice.Die {
	t.Helper()
	d, err := dice.NewDie([]dice.Face{heads, tails})
	require.NoError(t, err)
	for _, f := range []dice.Face{heads, tails} {
		if f != face {
			require.NoError(t, d.ChangeWeight(f, 0))
		}
	}
	return d
}

func played(t helperT, n int, ds ...*dice.Die) (*game.Game, *analyzer.Analyzer) {
	t.Helper()
	g, err := game.NewGame(ds)
	require.NoError(t, err)
	_, err = g.Play(n)
	require.NoError(t, err)
	a, err := analyzer.New(g)
	require.NoError(t, err)
	return g, a
}

func TestNew_NotAGame(t *testing.T) {
	_, err := analyzer.New(nil)
	assert.ErrorIs(t, err, analyzer.ErrNotAGame)
}

// TestQueries_BeforePlay verifies every query reports missing results.
func TestQueries_BeforePlay(t *testing.T) {
	g, err := game.NewGame([]*dice.Die{loadedCoin(t, heads)})
	require.NoError(t, err)
	a, err := analyzer.New(g)
	require.NoError(t, err)

	_, err = a.Jackpot()
	assert.ErrorIs(t, err, game.ErrNoResults)
	_, err = a.FaceCounts()
	assert.ErrorIs(t, err, game.ErrNoResults)
	_, err = a.ComboCount()
	assert.ErrorIs(t, err, game.ErrNoResults)
	_, err = a.PermCount()
	assert.ErrorIs(t, err, game.ErrNoResults)
}

// TestJackpot_Forced verifies identically loaded dice hit on every round.
func TestJackpot_Forced(t *testing.T) {
	_, a := played(t, 10, loadedCoin(t, heads), loadedCoin(t, heads))
	n, err := a.Jackpot()
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestJackpot_Never(t *testing.T) {
	_, a := played(t, 10, loadedCoin(t, heads), loadedCoin(t, tails))
	n, err := a.Jackpot()
	require.NoError(t, err)
	assert.Zero(t, n)

	flags, err := a.Jackpots()
	require.NoError(t, err)
	assert.Len(t, flags, 10)
	assert.NotContains(t, flags, true)
}

// TestJackpot_ReadsLatestPlay verifies the analyzer follows the game's newest table.
func TestJackpot_ReadsLatestPlay(t *testing.T) {
	g, a := played(t, 3, loadedCoin(t, heads), loadedCoin(t, heads))
	_, err := g.Play(7)
	require.NoError(t, err)
	n, err := a.Jackpot()
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestFaceCounts_Forced(t *testing.T) {
	_, a := played(t, 4, loadedCoin(t, heads), loadedCoin(t, tails), loadedCoin(t, heads))
	fc, err := a.FaceCounts()
	require.NoError(t, err)
	assert.Equal(t, []dice.Face{heads, tails}, fc.Faces)
	require.Len(t, fc.Counts, 4)
	for _, row := range fc.Counts {
		assert.Equal(t, []int{2, 1}, row)
	}
	assert.Equal(t, []string{"Roll", "H", "T"}, fc.Columns())
	assert.Equal(t, []string{"0", "2", "1"}, fc.Records()[0])
}

// TestFaceCounts_IncludesUnrolledFaces verifies faces nobody rolled appear as zero columns.
func TestFaceCounts_IncludesUnrolledFaces(t *testing.T) {
	_, a := played(t, 2, loadedCoin(t, heads), loadedCoin(t, heads))
	fc, err := a.FaceCounts()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 0}, {2, 0}}, fc.Counts)
}

// TestComboCount_AllIdentical verifies a run of (H, H) rounds yields one combination.
func TestComboCount_AllIdentical(t *testing.T) {
	_, a := played(t, 4, loadedCoin(t, heads), loadedCoin(t, heads))
	combos, err := a.ComboCount()
	require.NoError(t, err)
	require.Len(t, combos.Rows, 1)
	assert.Equal(t, []dice.Face{heads, heads}, combos.Rows[0].Faces)
	assert.Equal(t, 4, combos.Rows[0].Count)
	assert.Equal(t, []string{"Combination", "Count"}, combos.Columns())
	assert.Equal(t, [][]string{{"(H, H)", "4"}}, combos.Records())
}

// TestComboCount_IgnoresOrder verifies (T, H) and (H, T) rounds merge into one combination
// while PermCount keeps them apart.
func TestComboCount_IgnoresOrder(t *testing.T) {
	_, a := played(t, 5, loadedCoin(t, tails), loadedCoin(t, heads))
	combos, err := a.ComboCount()
	require.NoError(t, err)
	assert.Equal(t, 5, combos.Count(heads, tails))
	assert.Equal(t, 0, combos.Count(tails, heads))

	perms, err := a.PermCount()
	require.NoError(t, err)
	assert.Equal(t, "Permutation", perms.Label)
	assert.Equal(t, 5, perms.Count(tails, heads))
	assert.Equal(t, 0, perms.Count(heads, tails))
}

func TestTallies_SortedByTuple(t *testing.T) {
	seeded := func(seed uint64) *dice.Die {
		d, err := dice.NewDieOf([]int{3, 1, 2}, dice.WithSource(dice.NewSeededSource(seed)))
		require.NoError(t, err)
		return d
	}
	_, a := played(t, 200, seeded(1), seeded(2))
	perms, err := a.PermCount()
	require.NoError(t, err)
	for i := 1; i < len(perms.Rows); i++ {
		assert.Negative(t, dice.CompareTuples(perms.Rows[i-1].Faces, perms.Rows[i].Faces))
	}
}

// TestStatistics_Property checks the counting invariants on random games:
// face-count rows sum to the die count, combination and permutation counts
// sum to the rounds played, and each combination equals the sum of its
// permutations.
func TestStatistics_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.IntRange(1, 4).Draw(rt, "dice")
		n := rapid.IntRange(1, 60).Draw(rt, "rolls")
		seed := rapid.Uint64().Draw(rt, "seed")

		ds := make([]*dice.Die, k)
		for i := range ds {
			d, err := dice.NewDieOf([]string{"a", "b", "c"}, dice.WithSource(dice.NewSeededSource(seed+uint64(i))))
			require.NoError(rt, err)
			ds[i] = d
		}
		_, a := played(rt, n, ds...)

		fc, err := a.FaceCounts()
		require.NoError(rt, err)
		for _, row := range fc.Counts {
			sum := 0
			for _, c := range row {
				sum += c
			}
			assert.Equal(rt, k, sum)
		}

		combos, err := a.ComboCount()
		require.NoError(rt, err)
		perms, err := a.PermCount()
		require.NoError(rt, err)
		assert.Equal(rt, n, combos.Total())
		assert.Equal(rt, n, perms.Total())

		fromPerms := make(map[string]int)
		for _, p := range perms.Rows {
			sorted := analyzer.Tally{Faces: slices.Clone(p.Faces)}
			slices.SortFunc(sorted.Faces, dice.Face.Compare)
			fromPerms[sorted.Key()] += p.Count
		}
		for _, c := range combos.Rows {
			assert.Equal(rt, c.Count, fromPerms[c.Key()], "combination %s", c.Key())
		}
		assert.Len(rt, fromPerms, len(combos.Rows))

		jackpots, err := a.Jackpot()
		require.NoError(rt, err)
		assert.LessOrEqual(rt, jackpots, n)
	})
}
