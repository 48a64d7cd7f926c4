package mm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vmkernel/mm"
)

// Invariant 6: overlap is symmetric -- if [a,b) is rejected against an
// existing [c,d), then [c,d) is equally rejected against an existing [a,b).
func TestValidateOverlapSymmetric(t *testing.T) {
	cases := []struct {
		a, b, c, d int
	}{
		{0, 100, 50, 150},   // partial overlap
		{0, 100, 10, 90},    // candidate encloses existing
		{10, 90, 0, 100},    // existing encloses candidate
		{0, 100, 100, 200},  // adjacent, no overlap
		{0, 100, 200, 300},  // disjoint
	}

	for _, c := range cases {
		m1 := &mm.MM_t{Vmas: []*mm.VMA_t{{ID: 0, Start: c.c, End: c.d}}}
		err1 := mm.ValidateOverlap(m1, -1, c.a, c.b)

		m2 := &mm.MM_t{Vmas: []*mm.VMA_t{{ID: 0, Start: c.a, End: c.b}}}
		err2 := mm.ValidateOverlap(m2, -1, c.c, c.d)

		require.Equal(t, err1 != nil, err2 != nil,
			"overlap([%d,%d), [%d,%d)) must agree both directions", c.a, c.b, c.c, c.d)
	}
}

func TestValidateOverlapSkipsOwnID(t *testing.T) {
	m := &mm.MM_t{Vmas: []*mm.VMA_t{{ID: 0, Start: 0, End: 100}}}
	require.NoError(t, mm.ValidateOverlap(m, 0, 0, 100))
}
