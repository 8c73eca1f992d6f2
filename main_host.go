//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"chime/app"
	"chime/chimeos/songbook"
	"chime/hal"
)

func main() {
	var (
		song   = flag.String("song", "", "Songbook entry to play (empty plays the whole book).")
		list   = flag.Bool("list", false, "List songbook entries and exit.")
		loop   = flag.Bool("loop", false, "Loop forever.")
		volume = flag.Int("volume", 0, "Output level 1..255 (0 = default).")
		hz     = flag.Int("hz", 60, "Host step rate.")
		ticks  = flag.Uint64("ticks", 0, "Stop after N steps (0 = run until interrupted).")
	)
	flag.Parse()

	if *list {
		for _, name := range songbook.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg := app.Config{Loop: *loop}
	if *song != "" {
		if _, ok := songbook.Get(*song); !ok {
			fmt.Fprintf(os.Stderr, "unknown song %q (have: %s)\n", *song, strings.Join(songbook.Names(), ", "))
			os.Exit(2)
		}
		cfg.Playlist = []string{*song}
	}
	if *volume < 0 || *volume > 255 {
		fmt.Fprintf(os.Stderr, "volume %d out of range 0..255\n", *volume)
		os.Exit(2)
	}
	cfg.Volume = uint8(*volume)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := hal.RunHeadless(ctx, func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}, hal.HeadlessConfig{Hz: *hz, Ticks: *ticks})
	if err != nil {
		if err == context.Canceled {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
