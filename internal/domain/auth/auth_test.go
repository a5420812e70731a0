package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
)

func TestCardinalityFormula(t *testing.T) {
	assert.Equal(t, 5, auth.Cardinality(1))
	assert.Equal(t, 25, auth.Cardinality(2))
	assert.Equal(t, 150, auth.Cardinality(3))
	assert.Equal(t, 900, auth.Cardinality(4))
}

func TestTableProducesExactCardinalityWithEndRestriction(t *testing.T) {
	table := auth.NewTable()
	for length := auth.MinLength; length <= 4; length++ {
		n, err := table.Len(length)
		require.NoError(t, err)
		assert.Equal(t, auth.Cardinality(length), n)

		for i := 0; i < n; i++ {
			s, err := table.At(length, i)
			require.NoError(t, err)
			require.Len(t, s, length)
			assert.Contains(t, "56789", string(s[0]))
			assert.Contains(t, "56789", string(s[length-1]))
		}
	}
}

func TestTableStrictlyLexicographic(t *testing.T) {
	table := auth.NewTable()
	n, err := table.Len(3)
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		prev, err := table.At(3, i-1)
		require.NoError(t, err)
		cur, err := table.At(3, i)
		require.NoError(t, err)
		assert.Less(t, alphabetOrder(prev), alphabetOrder(cur))
	}
}

// alphabetOrder maps '.' to ':', the byte right after '9', so that Go's
// byte-wise string comparison follows the enumerator's alphabet order
// ('5' < '6' < '7' < '8' < '9' < '.').
func alphabetOrder(s string) string {
	return strings.ReplaceAll(s, ".", ":")
}

func TestReEnumerationIsDeterministic(t *testing.T) {
	t1 := auth.NewTable()
	t2 := auth.NewTable()
	n, _ := t1.Len(3)
	for i := 0; i < n; i++ {
		a, _ := t1.At(3, i)
		b, _ := t2.At(3, i)
		assert.Equal(t, a, b)
	}
}

func TestClampLengthBoundsAtTableSize(t *testing.T) {
	effective, clamped := auth.ClampLength(12)
	assert.Equal(t, auth.MaxLength, effective)
	assert.True(t, clamped)

	effective, clamped = auth.ClampLength(3)
	assert.Equal(t, 3, effective)
	assert.False(t, clamped)
}

func TestAtRejectsOutOfRangeLength(t *testing.T) {
	table := auth.NewTable()
	_, err := table.At(0, 0)
	assert.Error(t, err)
	_, err = table.At(11, 0)
	assert.Error(t, err)
}
