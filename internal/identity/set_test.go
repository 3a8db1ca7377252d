package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/zotdoctor/internal/identity"
)

func TestSetDifference(testInstance *testing.T) {
	testCases := []struct {
		name     string
		left     identity.Set
		right    identity.Set
		expected []identity.Identity
	}{
		{
			name:     "disjoint_sets",
			left:     identity.NewSet("a.pdf", "b.pdf"),
			right:    identity.NewSet("c.pdf"),
			expected: []identity.Identity{"a.pdf", "b.pdf"},
		},
		{
			name:     "overlapping_sets",
			left:     identity.NewSet("a.pdf", "b.pdf", "dir/c.pdf"),
			right:    identity.NewSet("b.pdf", "dir/c.pdf", "z.pdf"),
			expected: []identity.Identity{"a.pdf"},
		},
		{
			name:     "identical_sets",
			left:     identity.NewSet("a.pdf"),
			right:    identity.NewSet("a.pdf"),
			expected: []identity.Identity{},
		},
		{
			name:     "empty_left",
			left:     identity.NewSet(),
			right:    identity.NewSet("a.pdf"),
			expected: []identity.Identity{},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			difference := testCase.left.Difference(testCase.right)
			require.Equal(subTest, testCase.expected, difference.Sorted())
		})
	}
}

func TestSetSortedIsLexicographic(testInstance *testing.T) {
	set := identity.NewSet("b.pdf", "B.pdf", "a/z.pdf", "a.pdf")
	require.Equal(testInstance, []identity.Identity{"B.pdf", "a.pdf", "a/z.pdf", "b.pdf"}, set.Sorted())
}

func TestSetEqualAndDeduplication(testInstance *testing.T) {
	first := identity.NewSet("a.pdf", "a.pdf", "b.pdf")
	second := identity.NewSet("b.pdf", "a.pdf")

	require.Equal(testInstance, 2, first.Len())
	require.True(testInstance, first.Equal(second))
	require.False(testInstance, first.Equal(identity.NewSet("a.pdf")))
	require.False(testInstance, first.Equal(identity.NewSet("a.pdf", "c.pdf")))
}

func TestZeroValueSetAcceptsAdds(testInstance *testing.T) {
	var set identity.Set
	require.False(testInstance, set.Contains("a.pdf"))

	set.Add("a.pdf")
	require.True(testInstance, set.Contains("a.pdf"))
	require.Equal(testInstance, 1, set.Len())
}

func TestSetUnion(testInstance *testing.T) {
	union := identity.NewSet("a.pdf", "b.pdf").Union(identity.NewSet("b.pdf", "c.pdf"))
	require.Equal(testInstance, []identity.Identity{"a.pdf", "b.pdf", "c.pdf"}, union.Sorted())
}
