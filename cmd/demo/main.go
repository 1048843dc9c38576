// Command demo fills the local appointment cache with a sample book.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/config"
	"tableflip.dev/clinic/pkg/filter"
	"tableflip.dev/clinic/pkg/sample"
	"tableflip.dev/clinic/pkg/store"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		panic(err)
	}

	p, err := store.Load(cfg, zerolog.Nop())
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := p.ReplaceAll(ctx, sample.Appointments(time.Now())); err != nil {
		panic(err)
	}

	all := p.ListAll(ctx)
	filter.SortByStart(all)
	for _, r := range all {
		fmt.Printf("%s  %-25s %-10s %s\n", r.Date, r.PatientName(), r.Status, r.TypeLabel())
	}
}
