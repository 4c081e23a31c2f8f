package clog

import (
	"io"
	"sync"

	"github.com/apex/log"
)

// Component contexts used across the bot.
const (
	GlobalCtx    = "global"
	RouterCtx    = "router"
	DispatchCtx  = "dispatch"
	RenderCtx    = "render"
	BootstrapCtx = "bootstrap"
	DiscordCtx   = "discord"
)

// ContextLogger hands out one apex logger per named context. All contexts
// write through the same Handler but each has its own level, so a noisy
// component can be turned up or down without touching the rest.
type ContextLogger struct {
	handler *Handler

	mu           sync.Mutex
	defaultLevel log.Level
	loggers      map[string]*log.Logger
}

func NewContextLogger(w io.Writer) *ContextLogger {
	return &ContextLogger{
		handler:      NewHandler(w),
		defaultLevel: log.InfoLevel,
		loggers:      make(map[string]*log.Logger),
	}
}

func (l *ContextLogger) Handler() *Handler {
	return l.handler
}

// UsingCtx returns an entry for ctx, creating the context logger on first use.
func (l *ContextLogger) UsingCtx(ctx string) *log.Entry {
	return l.loggerFor(ctx).WithField("ctx", ctx)
}

func (l *ContextLogger) Global() *log.Entry {
	return l.UsingCtx(GlobalCtx)
}

func (l *ContextLogger) SetLevel(ctx string, level log.Level) {
	logger := l.loggerFor(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	logger.Level = level
}

func (l *ContextLogger) SetLevelFromString(ctx, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetLevel(ctx, level)
	return nil
}

// SetDefaultLevel changes the level of every context, including contexts
// created later.
func (l *ContextLogger) SetDefaultLevel(level log.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.defaultLevel = level
	for _, logger := range l.loggers {
		logger.Level = level
	}
}

func (l *ContextLogger) SetDefaultLevelFromString(s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetDefaultLevel(level)
	return nil
}

func (l *ContextLogger) DefaultLevel() log.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.defaultLevel
}

func (l *ContextLogger) loggerFor(ctx string) *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	logger, ok := l.loggers[ctx]
	if !ok {
		logger = &log.Logger{Handler: l.handler, Level: l.defaultLevel}
		l.loggers[ctx] = logger
	}

	return logger
}
