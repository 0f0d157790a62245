package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/chaz8081/gatt-browser/internal/ble"
	"github.com/chaz8081/gatt-browser/internal/config"
)

func main() {
	fs := flag.NewFlagSet("gatt-browser", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // we print our own usage
	var addrFlag, configPath string
	fs.StringVar(&addrFlag, "a", "", "address of the peripheral to connect to (aa:bb:cc:dd:ee:ff)")
	fs.StringVar(&addrFlag, "address", "", "address of the peripheral to connect to (aa:bb:cc:dd:ee:ff)")
	fs.StringVar(&configPath, "config", "", "path to config file (default: ~/.config/gatt-browser/config.yaml)")

	// Bad or unknown arguments are recovered: print usage, exit clean.
	if err := fs.Parse(os.Args[1:]); err != nil {
		usage()
		os.Exit(0)
	}
	if fs.NArg() > 0 {
		usage()
		os.Exit(0)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	if addrFlag == "" {
		addrFlag = cfg.Address
	}

	opts := ble.DefaultOptions()
	opts.ScanInterval = cfg.Scan.IntervalUnits
	opts.ScanWindow = cfg.Scan.WindowUnits
	opts.MaxServices = cfg.MaxServices

	if addrFlag != "" {
		addr, err := ble.ParseAddress(addrFlag)
		if err != nil {
			usage()
			os.Exit(0)
		}
		opts.Target = &addr
	}

	browser := ble.NewBrowser(ble.NewTinyGoStack(), opts)
	if err := browser.Run(context.Background()); err != nil {
		log.Fatalf("gatt-browser: %v", err)
	}
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	return config.Default(), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "\nUsage: %s [-a|--address aa:bb:cc:dd:ee:ff]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "If no argument is provided, GATT browser will start scanning and connect to the first found device.\nTo connect to a specific device use argument [-a].\n\n")
}
