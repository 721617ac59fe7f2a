package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/stream"
)

// PublishedEvent is one call recorded by InMemoryPublisher
type PublishedEvent struct {
	Topic   string
	Payload json.RawMessage
}

// InMemoryPublisher records every publish instead of fanning it out
type InMemoryPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	err    error
}

var _ stream.Publisher = (*InMemoryPublisher)(nil)

func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{}
}

// FailWith makes Publish return err without recording, until called with nil
func (p *InMemoryPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *InMemoryPublisher) Publish(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.events = append(p.events, PublishedEvent{Topic: topic, Payload: data})
	return nil
}

// Events returns what was published, in order
func (p *InMemoryPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent{}, p.events...)
}

// Topics returns the topic of every recorded publish, in order
func (p *InMemoryPublisher) Topics() []string {
	return lo.Map(p.Events(), func(e PublishedEvent, _ int) string {
		return e.Topic
	})
}

func (p *InMemoryPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.err = nil
}
