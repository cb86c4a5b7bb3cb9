// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/tsunamikit/config"
	"github.com/wavetermdev/tsunamikit/dom"
	"github.com/wavetermdev/tsunamikit/engine"
	"github.com/wavetermdev/tsunamikit/server"
	"golang.org/x/sync/errgroup"
)

var serveAddr string
var serveSeconds int
var serveWatch bool
var serveOpen bool

var serveCmd = &cobra.Command{
	Use:   "serve [--addr host:port] [-s seconds] [--watch] [--open]",
	Short: "Serve the demo page and push every update to the browser",
	Args:  cobra.NoArgs,
	RunE:  runServeCmd,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured addr)")
	serveCmd.Flags().IntVarP(&serveSeconds, "seconds", "s", demoSeconds, "countdown length in seconds")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "re-render when the env file changes")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the page in the default browser")
	rootCmd.AddCommand(serveCmd)
}

func demoPropsFromConfig(cfg *config.Config) demoPageProps {
	return demoPageProps{
		Seconds: serveSeconds,
		Format:  cfg.Format,
		Locale:  cfg.Locale,
		Tick:    cfg.Tick,
	}
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	if serveSeconds < 0 {
		return parseSecondsErr(serveSeconds)
	}
	addr := Config.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watcher *config.Watcher
	if serveWatch {
		var err error
		watcher, err = config.MakeWatcher(envFileArg)
		if err != nil {
			return err
		}
	}
	listener, err := server.MakeTCPListener(addr)
	if err != nil {
		return err
	}
	srv := server.MakeServer("tsunamikit")
	doc := dom.NewDocument()
	root := engine.MakeRoot(engine.RootOpts{
		Host: doc,
		OnFlush: func() {
			srv.Publish(doc.MountHTML())
		},
	})
	root.Render(demoPage(demoPropsFromConfig(Config)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return root.Run(gctx)
	})
	g.Go(func() error {
		return srv.Serve(gctx, listener)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx, func(cfg *config.Config) {
				log.Printf("config changed, locale=%s format=%s\n", cfg.Locale, cfg.Format)
				root.QueueRender(demoPage(demoPropsFromConfig(cfg)))
			})
		})
	}
	url := "http://" + listener.Addr().String() + "/"
	WriteStderr("serving on %s\n", url)
	if serveOpen {
		if err := open.Run(url); err != nil {
			log.Printf("cannot open browser: %v\n", err)
		}
	}
	return g.Wait()
}
