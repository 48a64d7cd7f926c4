// Command simrun drives the virtual-memory and scheduler packages through
// a handful of demonstration scenarios, as a standalone tool wired against
// the rest of the tree rather than a test. It exists for a human to point
// at a flag and watch the simulator's decisions, not as the primary way
// these packages are verified.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"vmkernel/config"
	"vmkernel/counters"
	"vmkernel/memphy"
	"vmkernel/paging"
	"vmkernel/proc"
	"vmkernel/sched"
	"vmkernel/trace"
)

func main() {
	ioDump := flag.Bool("iodump", false, "trace every pgread/pgwrite")
	memphysDump := flag.Bool("memphysdump", false, "dump RAM after every traced access")
	ramFrames := flag.Int("ram", 2, "RAM frame count")
	swapFrames := flag.Int("swap", 4, "swap frame count")
	variant := flag.String("sched", "mlq", "scheduler variant: mlq or fcfs")
	flag.Parse()

	lim := config.Default()
	lim.RamFrames = *ramFrames
	lim.SwapFrames = *swapFrames
	lim.Flags = config.Flags_t{IODUMP: *ioDump, MEMPHYSDUMP: *memphysDump}
	if *variant == "fcfs" {
		lim.Variant = config.FCFS
	}

	tr := trace.New(os.Stdout, lim.Flags.IODUMP, lim.Flags.MEMPHYSDUMP)
	pctr := &counters.Paging{}
	sctr := &counters.Sched{}

	ram := memphy.New(lim.RamFrames)
	swap := memphy.New(lim.SwapFrames)
	eng := paging.New(tr, pctr)
	s := sched.New(lim, tr, sctr)

	p := proc.New(0, 0, ram, swap, 0)

	runScenarios(eng, p)

	s.AddProc(p)
	s.FinishProc(p)

	fmt.Println("--- paging counters ---")
	fmt.Print(counters.Dump(pctr))
	fmt.Println("--- scheduler counters ---")
	fmt.Print(counters.Dump(sctr))

	usage := p.Usage.Fetch()
	fmt.Printf("--- usage: run=%s fault=%s ---\n", usage.Run, usage.Fault)
}

// runScenarios walks p through a small grow/write/read/free/reuse sequence,
// printing each step's outcome. Each step's wall-clock cost is charged to
// p's own run-time accounting, the way a scheduler would bill a quantum.
func runScenarios(eng *paging.Engine_t, p *proc.Proc_t) {
	step := func(name string, status int) {
		fmt.Printf("%-32s status=%d\n", name, status)
	}
	timed := func(name string, fn func() int) {
		start := time.Now()
		status := fn()
		p.Usage.Runadd(time.Since(start))
		step(name, status)
	}

	timed("grow: pgalloc(p,100,0)", func() int { return eng.Pgalloc(p, 100, 0) })
	timed("write: pgwrite(p,0x42,0,10)", func() int { return eng.Pgwrite(p, 0x42, 0, 10) })

	var got uint8
	start := time.Now()
	status := eng.Pgread(p, 0, 10, &got)
	p.Usage.Runadd(time.Since(start))
	fmt.Printf("read: pgread(p,0,10,_) = 0x%02x status=%d\n", got, status)

	timed("free: pgfree_data(p,0)", func() int { return eng.PgfreeData(p, 0) })
	timed("reuse: pgalloc(p,50,1)", func() int { return eng.Pgalloc(p, 50, 1) })
}
