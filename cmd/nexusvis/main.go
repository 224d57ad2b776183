// Command nexusvis is the desktop sales tax nexus checker.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/nexus-checker/internal/bootstrap"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/logging"
	"github.com/elektrokombinacija/nexus-checker/internal/vis"
)

func main() {
	namespace := flag.String("namespace", "", "answer namespace (default store.namespace)")
	flag.Parse()

	cfg, err := config.Load("nexusvis")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ns := cfg.Store.Namespace
	if *namespace != "" {
		ns = *namespace
	}

	ctx := context.Background()
	env, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Sales Tax Nexus Checker"),
			app.Size(unit.Dp(1300), unit.Dp(820)),
		)

		application := vis.NewApp(env.NewState(ctx, ns))
		err := application.Run(window)
		env.Close()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
