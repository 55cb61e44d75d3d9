// Package viewer wires the event stream, the presenter and the delivery
// channels into one pipeline.
package viewer

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stellarlinkco/taskview/internal/channel"
	"github.com/stellarlinkco/taskview/internal/config"
	"github.com/stellarlinkco/taskview/internal/digest"
	"github.com/stellarlinkco/taskview/internal/display"
	"github.com/stellarlinkco/taskview/internal/stream"
	"github.com/stellarlinkco/taskview/internal/transcript"
)

// Options for creating a Viewer
type Options struct {
	// ConsoleOut overrides the console channel's writer (for testing).
	ConsoleOut io.Writer
	// SignalChan overrides the shutdown signal source (for testing).
	SignalChan chan os.Signal
}

type Viewer struct {
	cfg        *config.Config
	presenter  *display.ExecutionPresenter
	renderer   *transcript.Renderer
	channels   *channel.Manager
	digest     *digest.Service
	signalChan chan os.Signal
}

func New(cfg *config.Config) (*Viewer, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions creates a Viewer with custom options for testing
func NewWithOptions(cfg *config.Config, opts Options) (*Viewer, error) {
	consoleOut := opts.ConsoleOut
	if consoleOut == nil {
		consoleOut = os.Stdout
	}

	chMgr, err := channel.NewManager(cfg.Channels, consoleOut)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:        cfg,
		presenter:  display.NewExecutionPresenter(),
		renderer:   transcript.NewRenderer(),
		channels:   chMgr,
		signalChan: opts.SignalChan,
	}
	v.digest = digest.NewService(cfg.Digest.Schedule, func(text string) {
		v.channels.Broadcast(transcript.Outbound{Text: text})
	})
	return v, nil
}

// Consume drains the event stream, describing and delivering every tool
// event. Events for unrecognized tools are logged and skipped; they never
// stop the stream.
func (v *Viewer) Consume(r *stream.Reader) error {
	for {
		ev, err := r.Next()
		if err == io.EOF {
			if n := r.Skipped(); n > 0 {
				log.Printf("[viewer] skipped %d malformed lines", n)
			}
			return nil
		}
		if err != nil {
			return err
		}
		v.handle(ev)
	}
}

func (v *Viewer) handle(ev stream.Event) {
	switch ev.Type {
	case stream.EventInvocation:
		info, err := v.presenter.DescribeInvocation(*ev.Invocation)
		if err != nil {
			var ute *display.UnsupportedToolError
			if errors.As(err, &ute) {
				log.Printf("[viewer] dropping invocation for unsupported tool %q", ute.Name)
				return
			}
			log.Printf("[viewer] describe invocation: %v", err)
			return
		}
		v.digest.RecordInvocation(info.Title)
		v.channels.Broadcast(v.renderer.RenderInvocation(info))
	case stream.EventResult:
		update := v.presenter.DescribeResult(*ev.Result, ev.Origin)
		out, ok := v.renderer.RenderUpdate(update)
		if !ok {
			return
		}
		v.digest.RecordUpdate()
		v.channels.Broadcast(out)
	}
}

// Run starts channels and the digest, consumes the stream, then waits for a
// shutdown signal.
func (v *Viewer) Run(ctx context.Context, input io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := v.channels.StartAll(ctx); err != nil {
		return err
	}
	log.Printf("[viewer] channels started: %v", v.channels.EnabledChannels())

	if err := v.digest.Start(); err != nil {
		log.Printf("[viewer] digest start warning: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- v.Consume(stream.NewReader(input))
	}()

	sigCh := v.signalChan
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	}

	var consumeErr error
	select {
	case consumeErr = <-done:
	case <-sigCh:
		log.Printf("[viewer] shutting down...")
	}

	v.digest.Stop()
	_ = v.channels.StopAll()
	return consumeErr
}
