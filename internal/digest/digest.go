// Package digest posts a periodic summary of tool activity through the
// channels. Presentation only: it counts what was displayed, it never
// touches execution.
package digest

import (
	"fmt"
	"log"
	"strings"
	"sync"

	rcron "github.com/robfig/cron/v3"
)

// Service accumulates activity counters and flushes them on a cron
// schedule. An empty schedule disables the service entirely.
type Service struct {
	schedule string

	// Post receives the rendered digest line on each non-empty tick.
	Post func(text string)

	mu          sync.Mutex
	invocations int
	updates     int
	titles      []string

	cron *rcron.Cron
}

func NewService(schedule string, post func(text string)) *Service {
	return &Service{schedule: schedule, Post: post}
}

// Start registers the digest job. Schedules use the cron format with a
// seconds field, e.g. "0 0 * * * *" for hourly.
func (s *Service) Start() error {
	if s.schedule == "" {
		return nil
	}

	s.cron = rcron.New(rcron.WithSeconds())
	if _, err := s.cron.AddFunc(s.schedule, s.flush); err != nil {
		return fmt.Errorf("register digest schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Printf("[digest] scheduled: %s", s.schedule)
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RecordInvocation counts one displayed invocation under its title.
func (s *Service) RecordInvocation(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invocations++
	for _, seen := range s.titles {
		if seen == title {
			return
		}
	}
	s.titles = append(s.titles, title)
}

// RecordUpdate counts one displayed result update.
func (s *Service) RecordUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
}

// flush posts the summary and resets the counters. Ticks with no activity
// post nothing.
func (s *Service) flush() {
	s.mu.Lock()
	invocations, updates, titles := s.invocations, s.updates, s.titles
	s.invocations, s.updates, s.titles = 0, 0, nil
	s.mu.Unlock()

	if invocations == 0 && updates == 0 {
		return
	}
	if s.Post == nil {
		log.Printf("[digest] no post handler set")
		return
	}

	line := fmt.Sprintf("activity digest: %d invocations, %d updates", invocations, updates)
	if len(titles) > 0 {
		line += " (" + strings.Join(titles, ", ") + ")"
	}
	s.Post(line)
}
