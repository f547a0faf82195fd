package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: XDG config dir)")
	totalGames := flag.Int("games", 0, "number of games to play (0 = config)")
	parallel := flag.Int("parallel", 0, "games played at the same time (0 = config)")
	depthA := flag.Int("depth-a", 3, "search depth of player A")
	depthB := flag.Int("depth-b", 2, "search depth of player B")
	randomPlies := flag.Int("random-plies", 4, "random opening plies per game")
	seed := flag.Int64("seed", 1, "random seed for openings")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *totalGames > 0 {
		cfg.Selfplay.Games = *totalGames
	}
	if *parallel > 0 {
		cfg.Selfplay.Parallel = *parallel
	}

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	a := Player{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthA), Depth: *depthA}
	b := Player{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthB), Depth: *depthB}

	start := time.Now()
	var (
		mu    sync.Mutex
		score Tally
	)

	grp, ctx := errgroup.WithContext(context.Background())
	grp.SetLimit(cfg.Selfplay.Parallel)
	for i := 0; i < cfg.Selfplay.Games; i++ {
		i := i
		grp.Go(func() error {
			// 偶数局 A 执红，奇数局换边
			red, black := a, b
			if i%2 == 1 {
				red, black = b, a
			}
			res, err := PlayGame(ctx, Match{
				Red:         red,
				Black:       black,
				RandomPlies: *randomPlies,
				Seed:        *seed + int64(i),
			})
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			log.Printf("game %d: red [%s] vs black [%s]: %v after %d plies (%d nodes)",
				i+1, red.Name, black.Name, res.Status, res.Plies, res.Nodes)

			mu.Lock()
			score.Add(res, i%2 == 0)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	fmt.Printf("\n=== Final Score (%v) ===\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s: %d\n", a.Name, score.AWins)
	fmt.Printf("%s: %d\n", b.Name, score.BWins)
	fmt.Printf("Draws: %d\n", score.Draws)
	fmt.Printf("Stalemates: %d\n", score.Stalemates)
	os.Exit(0)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.InitConfig()
}
