package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/beatjudge/internal/config"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}
	logger, err := newLogger(cfg.Verbose)
	if nil != err {
		return err
	}
	defer logger.Sync()

	p := NewProgram(cfg, logger)
	defer p.Deinit()
	if err := p.Init(); nil != err {
		return err
	}
	if err := p.Run(); nil != err {
		return err
	}
	_, err = p.Finish()
	return err
}
