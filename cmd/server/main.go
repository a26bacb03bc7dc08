// Package main is the entry point for the bruteconfig API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/james-see/bruteconfig/pkg/api"
	"github.com/james-see/bruteconfig/pkg/config"
	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/logging"
	"github.com/james-see/bruteconfig/pkg/midiport"
)

func main() {
	configFile := flag.String("config", "", "Config file (default ~/.config/bruteconfig/config.yaml)")
	port := flag.Int("port", 0, "Server port (default from config, 8080)")
	out := flag.String("out", "", "MIDI output port name fragment or number")
	flag.Parse()

	if err := run(*configFile, *port, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string, port int, out string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if out != "" {
		cfg.Output = out
	}

	log, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	defer midiport.CloseDriver()

	ed := editor.New(nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	output, err := midiport.OpenOutput(ctx, cfg.Output, log)
	if err != nil {
		log.WithError(err).Warn("no MIDI output, settings will not be sent")
	} else {
		defer func() { _ = output.Close() }()
		ed.SetOutput(output)
	}

	fmt.Printf("Starting bruteconfig API server on port %d...\n", cfg.Server.Port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", cfg.Server.Port)

	return api.StartServer(cfg.Server.Port, api.New(ed, midiport.List, log))
}
