package channel

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/stellarlinkco/taskview/internal/config"
	"github.com/stellarlinkco/taskview/internal/transcript"
)

// Manager owns the enabled channels and fans outbound messages out to all
// of them.
type Manager struct {
	channels map[string]Channel
}

// NewManager builds the channels enabled in cfg. consoleOut receives the
// console channel's output when that channel is enabled.
func NewManager(cfg config.ChannelsConfig, consoleOut io.Writer) (*Manager, error) {
	m := &Manager{channels: make(map[string]Channel)}

	if cfg.Console.Enabled {
		m.Add(NewConsoleChannel(consoleOut))
	}

	if cfg.Telegram.Enabled {
		ch, err := NewTelegramChannel(cfg.Telegram)
		if err != nil {
			return nil, fmt.Errorf("init telegram channel: %w", err)
		}
		m.Add(ch)
	}

	if cfg.WebUI.Enabled {
		m.Add(NewWebUIChannel(cfg.WebUI))
	}

	return m, nil
}

// Add registers a channel. Later registrations with the same name replace
// earlier ones.
func (m *Manager) Add(ch Channel) {
	m.channels[ch.Name()] = ch
}

func (m *Manager) StartAll(ctx context.Context) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(m.channels))

	for name, ch := range m.channels {
		wg.Add(1)
		go func(name string, ch Channel) {
			defer wg.Done()
			log.Printf("[channel-mgr] starting %s", name)
			if err := ch.Start(ctx); err != nil {
				errCh <- fmt.Errorf("%s: %w", name, err)
			}
		}(name, ch)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}
	return nil
}

// Broadcast sends one message to every channel. A failing channel is logged
// and skipped so the rest still get the message.
func (m *Manager) Broadcast(msg transcript.Outbound) {
	for name, ch := range m.channels {
		if err := ch.Send(msg); err != nil {
			log.Printf("[channel-mgr] send to %s failed: %v", name, err)
		}
	}
}

func (m *Manager) StopAll() error {
	for name, ch := range m.channels {
		log.Printf("[channel-mgr] stopping %s", name)
		if err := ch.Stop(); err != nil {
			log.Printf("[channel-mgr] error stopping %s: %v", name, err)
		}
	}
	return nil
}

func (m *Manager) EnabledChannels() []string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	return names
}
