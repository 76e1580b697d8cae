package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"excer/internal/adapters/config"
	"excer/internal/domain/stocks"
	"excer/internal/poller"
	"excer/pkg/logger"
)

// watch follows a running tracker and prints each accepted snapshot. It is
// the terminal equivalent of keeping the dashboard open.
func main() {
	serverURL := flag.String("server", "", "tracker base URL (defaults to POLLER_SERVER_URL)")
	top := flag.Int("top", 10, "how many symbols to print per update")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	url := *serverURL
	if url == "" {
		url = cfg.Poller.ServerURL
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "no server URL: pass -server or set POLLER_SERVER_URL")
		os.Exit(1)
	}

	controller := poller.NewController(
		poller.NewClient(url),
		poller.Options{
			RefreshEvery: cfg.Poller.RefreshEvery,
			CheckEvery:   cfg.Poller.CheckEvery,
			PollEvery:    cfg.Poller.PollEvery,
		},
		func(snapshot *stocks.Snapshot) {
			printSnapshot(snapshot, *top)
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	logger.Infof("Watching %s", url)
	_ = controller.Run(ctx)
}

func printSnapshot(snapshot *stocks.Snapshot, top int) {
	updated := time.UnixMilli(snapshot.LastUpdated)

	if !snapshot.OK() {
		fmt.Printf("\n[%s] tracker reported an error state (updated %s)\n",
			updated.Format(time.Kitchen), humanize.Time(updated))
		return
	}

	fmt.Printf("\n[%s] %s from %d subreddits (updated %s)\n",
		updated.Format(time.Kitchen),
		english(len(snapshot.Stocks), "trending symbol"),
		snapshot.TotalSources,
		humanize.Time(updated),
	)

	limit := top
	if limit > len(snapshot.Stocks) {
		limit = len(snapshot.Stocks)
	}

	for i := 0; i < limit; i++ {
		stock := snapshot.Stocks[i]
		fmt.Printf("  %2d. %-5s score %6.2f  %s, %s, sentiment %+.2f\n",
			i+1,
			stock.Symbol,
			stock.TrendingScore,
			english(stock.Mentions, "mention"),
			english(stock.UniquePosts, "post"),
			stock.SentimentScore,
		)
	}
}

func english(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
