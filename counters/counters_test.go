package counters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIncRespectsEnabled(t *testing.T) {
	old := Enabled
	defer func() { Enabled = old }()

	var c Counter_t
	Enabled = false
	c.Inc()
	require.Equal(t, int64(0), c.Value())

	Enabled = true
	c.Inc()
	c.Add(4)
	require.Equal(t, int64(5), c.Value())
}

func TestDumpListsCounterFields(t *testing.T) {
	p := &Paging{}
	p.Faults.Add(2)
	p.Evictions.Inc()

	out := Dump(p)
	require.Contains(t, out, "Faults: 2")
	require.Contains(t, out, "Evictions: 1")
	require.Contains(t, out, "SwapIns: 0")
}

func TestDumpRejectsNonStruct(t *testing.T) {
	require.Equal(t, "", Dump(42))
}
