// Package channel delivers rendered transcript messages to their
// destinations. Channels here are outbound only: this side of the system
// presents tool activity, it does not accept commands.
package channel

import (
	"context"
	"fmt"
	"io"

	"github.com/stellarlinkco/taskview/internal/transcript"
)

// Channel is one transcript delivery target.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Send(msg transcript.Outbound) error
	Stop() error
}

const consoleChannelName = "console"

// ConsoleChannel writes rendered transcript text to a writer, one message
// per paragraph.
type ConsoleChannel struct {
	out io.Writer
}

func NewConsoleChannel(out io.Writer) *ConsoleChannel {
	return &ConsoleChannel{out: out}
}

func (c *ConsoleChannel) Name() string { return consoleChannelName }

func (c *ConsoleChannel) Start(ctx context.Context) error { return nil }

func (c *ConsoleChannel) Send(msg transcript.Outbound) error {
	if msg.Text == "" {
		return nil
	}
	if _, err := fmt.Fprintln(c.out, msg.Text); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}

func (c *ConsoleChannel) Stop() error { return nil }
