package clog

import (
	"io"
	"os"

	"github.com/apex/log"
)

var clogger = NewContextLogger(os.Stdout)

// Install routes the package level apex/log functions through the shared
// handler so log.Infof and friends format the same way as context loggers.
func Install() {
	log.SetHandler(clogger.Handler())
	log.SetLevel(clogger.DefaultLevel())
}

func UsingCtx(ctx string) *log.Entry {
	return clogger.UsingCtx(ctx)
}

func Global() *log.Entry {
	return clogger.Global()
}

func SetLevel(ctx string, level log.Level) {
	clogger.SetLevel(ctx, level)
}

func SetLevelFromString(ctx, s string) error {
	return clogger.SetLevelFromString(ctx, s)
}

func SetDefaultLevelFromString(s string) error {
	if err := clogger.SetDefaultLevelFromString(s); err != nil {
		return err
	}

	log.SetLevel(clogger.DefaultLevel())
	return nil
}

func SetOutput(w io.Writer) {
	clogger.Handler().SetOutput(w)
}
