package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/pipeparty/slot"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type slotBenchConfig struct {
	name          string
	fieldCount    int
	observedEvery int // every nth field gets an observer, 0 for none
	iterations    int
	expectedCount int64
}

func main() {
	log.Print("Starting slot registry benchmark, please wait...")
	defer log.Print("Finished slot registry benchmark")

	cfgs := []slotBenchConfig{
		{
			name:          "unobserved narrow",
			fieldCount:    4,
			observedEvery: 0,
			iterations:    2_000_000,
			expectedCount: 0,
		},
		{
			name:          "unobserved wide",
			fieldCount:    256,
			observedEvery: 0,
			iterations:    500_000,
			expectedCount: 0,
		},
		{
			name:          "quarter observed",
			fieldCount:    64,
			observedEvery: 4,
			iterations:    500_000,
			expectedCount: 125_000,
		},
		{
			name:          "fully observed",
			fieldCount:    64,
			observedEvery: 1,
			iterations:    500_000,
			expectedCount: 500_000,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "fields", "observed", "writes", "notified", "time", "writeRate",
	})

	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		r := slot.New(cfg.fieldCount)
		keys := make([]slot.Key[int], cfg.fieldCount)
		for i := range keys {
			keys[i] = slot.At[int](i)
		}

		observed := 0
		var notified int64
		for i := range keys {
			if cfg.observedEvery == 0 || i%cfg.observedEvery != 0 {
				continue
			}
			observed++
			_, err := slot.Observe(r, keys[i]).
				Subscribe(func(int) { notified++ }, nil, nil)
			if err != nil {
				log.Fatal(err)
			}
		}

		start := time.Now()
		for i := 0; i < cfg.iterations; i++ {
			key := keys[i%cfg.fieldCount]
			slot.Set(r, key, slot.Get(r, key)+1)
		}
		elapsed := time.Since(start)

		if notified != cfg.expectedCount {
			log.Fatalf("'%s': notified %d, expected %d", cfg.name, notified, cfg.expectedCount)
		}

		rate := float64(cfg.iterations) / elapsed.Seconds()
		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.fieldCount)),
			humanize.Comma(int64(observed)),
			humanize.Comma(int64(cfg.iterations)),
			humanize.Comma(notified),
			elapsed.Round(time.Microsecond).String(),
			fmt.Sprintf("%s/s", humanize.CommafWithDigits(rate, 0)),
		})
	}

	table.Render()
}
