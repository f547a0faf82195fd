// xiangqi-tui 在终端里和引擎下象棋。
package main

import (
	"flag"
	"fmt"
	"os"

	"xiangqi/internal/config"
	"xiangqi/internal/tui"
	"xiangqi/internal/xiangqi"
)

var (
	flagConfig = flag.String("config", "", "config file (default: XDG config dir)")
	flagColor  = flag.String("color", "", "your side: red or black (overrides config)")
	flagDepth  = flag.Int("depth", 0, "AI search depth 1-3 (overrides config)")
	flagHanzi  = flag.Bool("hanzi", false, "draw pieces as Chinese characters")
	flagSave   = flag.Bool("save-config", false, "write the effective config to the XDG config dir and exit")
)

func main() {
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch *flagColor {
	case "":
	case "red":
		cfg.Engine.AISide = "black"
	case "black":
		cfg.Engine.AISide = "red"
	default:
		fmt.Fprintf(os.Stderr, "unknown color %q\n", *flagColor)
		os.Exit(2)
	}
	if *flagDepth != 0 {
		cfg.Engine.Depth = *flagDepth
	}
	if *flagHanzi {
		cfg.Theme.HanziPieces = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagSave {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("config written to", path)
		return
	}

	aiSide := xiangqi.Black
	if cfg.Engine.AISide == "red" {
		aiSide = xiangqi.Red
	}
	if err := tui.Run(cfg, aiSide); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
