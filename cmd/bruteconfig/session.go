package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/james-see/bruteconfig/pkg/config"
	"github.com/james-see/bruteconfig/pkg/editor"
	"github.com/james-see/bruteconfig/pkg/logging"
	"github.com/james-see/bruteconfig/pkg/midiport"
)

type sessionOptions struct {
	// fail instead of continuing offline when the output cannot be opened
	requireOutput bool
	// keep the terminal clean: log to the configured file or bruteconfig.log
	logToFile bool
}

// session is the configuration, logger and MIDI ports shared by a command.
type session struct {
	cfg      *config.Config
	log      *logrus.Logger
	editor   *editor.Editor
	out      *midiport.Output
	closeLog func() error
	stop     func()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if outPort != "" {
		cfg.Output = outPort
	}
	if inPort != "" {
		cfg.Input = inPort
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logFile := cfg.Log.File
	if opts.logToFile && logFile == "" {
		if dir, err := config.Dir(); err == nil && os.MkdirAll(dir, 0755) == nil {
			logFile = filepath.Join(dir, "bruteconfig.log")
		}
	}
	log, closeLog, err := logging.Open(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, log: log, closeLog: closeLog}
	s.editor = editor.New(nil, log)
	if offline {
		log.Info("offline: settings are not sent")
		return s, nil
	}

	portCtx, cancel := context.WithTimeout(ctx, portsTimeout)
	defer cancel()

	out, err := midiport.OpenOutput(portCtx, cfg.Output, log)
	switch {
	case err == nil:
		s.out = out
		s.editor.SetOutput(out)
	case opts.requireOutput:
		s.Close()
		return nil, err
	default:
		log.WithError(err).Warn("no MIDI output, continuing offline")
	}

	if cfg.Input != "" {
		stop, err := midiport.Listen(portCtx, cfg.Input, s.editor.Observe)
		if err != nil {
			log.WithError(err).Warn("not listening for device messages")
		} else {
			s.stop = stop
		}
	}
	return s, nil
}

// Close releases the ports, the MIDI driver and the log file.
func (s *session) Close() {
	if s.stop != nil {
		s.stop()
	}
	if s.out != nil {
		if err := s.out.Close(); err != nil {
			s.log.WithError(err).Warn("closing MIDI output")
		}
	}
	if !offline {
		midiport.CloseDriver()
	}
	_ = s.closeLog()
}
