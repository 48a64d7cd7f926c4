// Package counters provides cheap atomic instrumentation for the paging
// engine and scheduler: the Counter_t-over-atomic idea, a global enable
// switch so counting costs nothing when turned off, and a reflection-based
// dump helper for whatever counters struct a caller defines.
package counters

import (
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
)

// Enabled gates whether Inc and Add have any effect. It starts out true;
// setting it false turns counting off and avoids the atomic traffic.
var Enabled = true

// Counter_t is a single named statistic.
type Counter_t int64

// Inc increments the counter by one when counting is enabled.
func (c *Counter_t) Inc() {
	if Enabled {
		atomic.AddInt64((*int64)(c), 1)
	}
}

// Add increments the counter by n when counting is enabled.
func (c *Counter_t) Add(n int64) {
	if Enabled {
		atomic.AddInt64((*int64)(c), n)
	}
}

// Value reads the counter irrespective of Enabled. It takes a value
// receiver so that reflect-obtained copies (see Dump) can call it too; a
// torn read during concurrent Inc/Add is an acceptable race for a debug
// snapshot.
func (c Counter_t) Value() int64 {
	return int64(c)
}

// Paging aggregates the counters the paging engine maintains. Its fields
// are plain Counter_t values, so a *Paging must be non-nil before they are
// incremented; paging.New substitutes an empty &Paging{} when given nil.
type Paging struct {
	Faults     Counter_t // pg_getpage calls that found a swapped PTE
	Evictions  Counter_t // victim pages chosen (either path)
	StolenLive Counter_t // victims found by the free-region liveness scan
	SwapIns    Counter_t
	SwapOuts   Counter_t
}

// Sched aggregates scheduler counters.
type Sched struct {
	Drops      Counter_t // enqueue attempts dropped because a queue was full
	Dispatches Counter_t // successful get_proc calls
	Replenish  Counter_t // put_proc/finish_proc quota replenishments
}

// Dump renders every Counter_t-typed field of st (a struct value or pointer
// to struct) as "name: value" lines.
func Dump(st interface{}) string {
	v := reflect.ValueOf(st)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}
	var b strings.Builder
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Type() != reflect.TypeOf(Counter_t(0)) {
			continue
		}
		b.WriteString(t.Field(i).Name)
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(f.Interface().(Counter_t).Value(), 10))
		b.WriteByte('\n')
	}
	return b.String()
}
