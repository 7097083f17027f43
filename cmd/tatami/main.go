// Command tatami is a dynamic tiling window manager for X11, with
// tag-based views, master-stack and dwindle layouts, and a minimal
// status bar.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tatami-wm/tatami/internal/config"
	"github.com/tatami-wm/tatami/internal/draw"
	"github.com/tatami-wm/tatami/internal/wm"
)

var (
	configPath  string
	debug       bool
	showVersion bool
)

func main() {
	root := &cobra.Command{
		Use:          "tatami",
		Short:        "a dynamic tiling window manager",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	defaultConfig := config.DefaultPath()
	if env := os.Getenv("TATAMI_CONFIG"); env != "" {
		defaultConfig = env
	}
	root.Flags().StringVarP(&configPath, "config", "c", defaultConfig, "configuration file")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Println("tatami-" + wm.Version)
		return nil
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	file, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(file)
	if err != nil {
		return err
	}

	backend, err := wm.NewX11Backend()
	if err != nil {
		return err
	}
	defer backend.Close()

	surface, err := draw.NewXSurface(backend.Conn(), file.BarFonts())
	if err != nil {
		return err
	}

	manager := wm.New(backend, surface, cfg)
	if err := manager.Setup(); err != nil {
		return err
	}
	manager.Scan()
	manager.Run()
	manager.Cleanup()
	return nil
}
