package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/platform"
)

var ErrDispatcherClosed = errors.New("dispatcher is closed")

type Handler interface {
	Handle(ctx context.Context, ev platform.Event) error
}

type envelope struct {
	id    string
	event platform.Event
}

// Dispatcher queues inbound events and runs them one at a time on the
// goroutine that called Run. A command runs to completion, including its
// render, before the next one starts.
type Dispatcher struct {
	handler   Handler
	events    chan envelope
	done      chan struct{}
	closeOnce sync.Once
}

func NewDispatcher(handler Handler, queueSize int) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		events:  make(chan envelope, queueSize),
		done:    make(chan struct{}),
	}
}

// Submit queues ev. It blocks while the queue is full, until ctx is done or
// the dispatcher stops.
func (d *Dispatcher) Submit(ctx context.Context, ev platform.Event) error {
	select {
	case <-d.done:
		return ErrDispatcherClosed
	default:
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return fmt.Errorf("generating correlation id: %w", err)
	}

	select {
	case d.events <- envelope{id: id, event: ev}:
		return nil
	case <-d.done:
		return ErrDispatcherClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled or Close is called. Events
// still queued at that point are dropped.
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case env := <-d.events:
			d.process(ctx, env)
		}
	}
}

func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *Dispatcher) process(ctx context.Context, env envelope) {
	l := clog.UsingCtx(clog.DispatchCtx).WithFields(describe(env))

	defer func() {
		if r := recover(); r != nil {
			l.Errorf("Panic handling event: %v", r)
		}
	}()

	l.Debugf("Handling event")

	err := d.handler.Handle(ctx, env.event)

	var perr *PreconditionError
	switch {
	case err == nil:
	case errors.As(err, &perr):
		l.Infof("Command refused: %s", err)
	case errors.Is(err, ErrUnknownCommand):
		l.Warnf("Ignoring event: %s", err)
	default:
		l.Errorf("Event failed: %s", err)
	}
}

func describe(env envelope) log.Fields {
	fields := log.Fields{"cid": env.id}
	switch e := env.event.(type) {
	case platform.ButtonPressed:
		fields["event"], fields["user"], fields["id"] = "button", e.UserID, e.CustomID
	case platform.FormSubmitted:
		fields["event"], fields["user"], fields["id"] = "form", e.UserID, e.CustomID
	case platform.SlashCommandInvoked:
		fields["event"], fields["user"], fields["id"] = "slash", e.UserID, e.Name
	case platform.MessagePosted:
		fields["event"], fields["user"], fields["id"] = "message", e.AuthorID, e.ChannelName
	default:
		fields["event"] = fmt.Sprintf("%T", env.event)
	}

	return fields
}
