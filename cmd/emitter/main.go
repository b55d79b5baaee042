package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"

	"github.com/For-ACGN/Emitter"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	name := filepath.Base(args[0])
	opts, err := emitter.ParseArgs(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			emitter.PrintUsage(stdout, name)
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		emitter.PrintUsage(stderr, name)
		return 2
	}

	config := emitter.DefaultConfig()
	if opts.ConfigPath != "" {
		cfgData, err := os.ReadFile(opts.ConfigPath) // #nosec
		if err != nil {
			return checkError(stderr, err)
		}
		config, err = emitter.LoadConfig(cfgData)
		if err != nil {
			return checkError(stderr, err)
		}
	}

	em, err := emitter.NewEmitter(config, opts.Position)
	if err != nil {
		return checkError(stderr, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// stop signal
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalCh)
		select {
		case <-signalCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	err = em.Run(ctx)
	e := em.Close()
	if err != nil {
		return checkError(stderr, err)
	}
	if e != nil {
		return checkError(stderr, e)
	}
	return 0
}

// checkError prints err with its stack trace and returns the exit code.
func checkError(w io.Writer, err error) int {
	log.New(w, "", log.LstdFlags).Printf("[fatal] %+v", err)
	return 1
}
