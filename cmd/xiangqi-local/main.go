package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"time"

	"xiangqi/internal/config"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/server/store"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	cfgPath := flag.String("config", "", "config file (default: XDG config dir)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js / svg (overrides config)")
	depth := flag.Int("depth", 0, "default AI search depth 1-3 (overrides config)")
	noBrowser := flag.Bool("no-browser", false, "do not open the browser")
	idle := flag.Duration("idle", 2*time.Hour, "drop games untouched for this long")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *webDir != "" {
		cfg.Server.WebDir = *webDir
	}
	if *depth != 0 {
		cfg.Engine.Depth = *depth
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	games := store.NewManager()
	srv, bound, err := httpserver.Start(cfg.Server.Addr, games, httpserver.Options{
		WebDir:       cfg.Server.WebDir,
		DefaultDepth: cfg.Engine.Depth,
		LogRequests:  cfg.Server.LogRequests,
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("listening on %s, serving static from %s", bound, cfg.Server.WebDir)

	if cfg.Server.OpenBrowser && !*noBrowser {
		openBrowser("http://" + bound.String() + "/web/")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := games.Prune(*idle); n > 0 {
				log.Printf("dropped %d idle games, %d left", n, games.Len())
			}
		case <-ctx.Done():
			log.Println("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("shutdown: %v", err)
			}
			return
		}
	}
}
