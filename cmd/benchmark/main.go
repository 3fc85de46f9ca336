package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/pipeparty/pipe"
	"github.com/delaneyj/pipeparty/slot"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkChains(true)
	benchmarkCombine(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

func addOne(v int) (int, error) {
	return v + 1, nil
}

// benchmarkChains fans one observed slot out to w chains of h map stages
// each and times every mutation end to end. The xxhash checksum over the
// delivered values both keeps the work live and catches chains that go
// out of order between runs.
func benchmarkChains(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Pipeline Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "delivered", "avg", "min", "p75", "p99", "max", "checksum"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			r := slot.New(1)
			counter := slot.At[int](0)
			src := slot.Observe(r, counter)

			digest := xxhash.New()
			delivered := 0
			var buf [8]byte
			onValue := func(v int) {
				delivered++
				binary.LittleEndian.PutUint64(buf[:], uint64(v))
				digest.Write(buf[:])
			}

			subs := make([]pipe.Subscription, 0, w)
			for i := 0; i < w; i++ {
				chain := pipe.From(src)
				for j := 0; j < h; j++ {
					chain = pipe.Map(chain, addOne)
				}
				sub, err := pipe.Subscribe(chain, onValue, nil, nil)
				if err != nil {
					log.Fatal(err)
				}
				subs = append(subs, sub)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				slot.Set(r, counter, slot.Get(r, counter)+1)
				tach.AddTime(time.Since(start))
			}
			for _, sub := range subs {
				sub.Unsubscribe()
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					humanize.Comma(int64(delivered)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					fmt.Sprintf("%016x", digest.Sum64()),
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkCombine(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Combine Latest")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "delivered", "avg", "min", "p75", "p99", "max", "checksum"})

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		r := slot.New(2)
		left := slot.At[int](0)
		right := slot.At[int](1)

		digest := xxhash.New()
		delivered := 0
		var buf [8]byte

		subs := make([]pipe.Subscription, 0, w*2)
		for i := 0; i < w; i++ {
			out, sub, err := pipe.Combine2(
				pipe.From(slot.Observe(r, left)),
				pipe.From(slot.Observe(r, right)),
				func(a, b int) (int, error) { return a + b, nil },
			)
			if err != nil {
				log.Fatal(err)
			}
			subs = append(subs, sub)

			outSub, err := out.Subscribe(func(v int) {
				delivered++
				binary.LittleEndian.PutUint64(buf[:], uint64(v))
				digest.Write(buf[:])
			}, nil, nil)
			if err != nil {
				log.Fatal(err)
			}
			subs = append(subs, outSub)
		}

		slot.Set(r, right, 1)
		for i := 0; i < iters; i++ {
			start := time.Now()
			slot.Set(r, left, slot.Get(r, left)+1)
			tach.AddTime(time.Since(start))
		}
		for _, sub := range subs {
			sub.Unsubscribe()
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("combine2: %d pairs", w),
				humanize.Comma(int64(delivered)),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
				fmt.Sprintf("%016x", digest.Sum64()),
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
