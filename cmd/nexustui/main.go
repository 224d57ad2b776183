// Command nexustui is the terminal sales tax nexus checker.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/elektrokombinacija/nexus-checker/internal/bootstrap"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/logging"
	"github.com/elektrokombinacija/nexus-checker/internal/tui"
)

func main() {
	namespace := flag.String("namespace", "", "answer namespace (default store.namespace)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	cfg, err := config.Load("nexustui")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.SetupWriter(logOut, cfg.Log.Level, cfg.Log.Format)

	ns := cfg.Store.Namespace
	if *namespace != "" {
		ns = *namespace
	}

	ctx := context.Background()
	env, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer env.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen: %v", err)
	}

	err = tui.NewApp(screen, env.NewState(ctx, ns)).Run()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
