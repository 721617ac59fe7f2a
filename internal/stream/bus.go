package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/pubsub"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"go.uber.org/fx"
)

const (
	DefaultKeepAliveInterval = 25 * time.Second
	DefaultBufferSize        = 16
)

// Publisher is the side of the bus the service layer depends on
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Bus relays change notifications to the subscribers connected at publish
// time. Delivery is at most once: nothing is queued for subscribers that
// connect later, and a subscriber that falls behind loses events.
type Bus struct {
	pubsub    pubsub.PubSub
	logger    *logger.Logger
	keepAlive time.Duration
	buffer    int

	mu     sync.RWMutex
	subs   map[string]*Subscription
	closed bool
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a bus on top of ps. The bus owns ps and closes it on Close.
func NewBus(cfg *config.Configuration, ps pubsub.PubSub, logger *logger.Logger) *Bus {
	keepAlive := DefaultKeepAliveInterval
	buffer := DefaultBufferSize
	if cfg != nil {
		if cfg.Stream.KeepAliveInterval > 0 {
			keepAlive = cfg.Stream.KeepAliveInterval
		}
		if cfg.Stream.BufferSize > 0 {
			buffer = cfg.Stream.BufferSize
		}
	}

	return &Bus{
		pubsub:    ps,
		logger:    logger,
		keepAlive: keepAlive,
		buffer:    buffer,
		subs:      make(map[string]*Subscription),
	}
}

// Module provides the bus and closes it when the application stops
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewBus,
			func(b *Bus) Publisher { return b },
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(lc fx.Lifecycle, b *Bus) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return b.Close()
		},
	})
}

// Subscription is the handle returned by Subscribe. Its Events channel is
// closed once the subscription ends, whatever ended it.
type Subscription struct {
	ID    string
	Topic string

	bus    *Bus
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Events yields a connected event first, then changes and keep-alives
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done is closed when the subscription has fully stopped
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close is shorthand for Bus.Unsubscribe
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.bus.Unsubscribe(s)
}

// Subscribe registers a subscriber on topic. The subscription is live when
// Subscribe returns: any later Publish on topic reaches it. It ends when ctx
// is done, when Unsubscribe is called or when the bus closes.
func (b *Bus) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	if topic == "" {
		return nil, ierr.NewError("topic is required").
			WithHint("A topic is required to subscribe").
			Mark(ierr.ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ierr.NewError("bus is closed").
			WithHint("Change notifications are not available").
			Mark(ierr.ErrInvalidOperation)
	}

	subCtx, cancel := context.WithCancel(ctx)
	msgs, err := b.pubsub.Subscribe(subCtx, topic)
	if err != nil {
		cancel()
		return nil, ierr.WithError(err).
			WithHintf("Could not subscribe to %s", topic).
			Mark(ierr.ErrSystem)
	}

	sub := &Subscription{
		ID:     types.GenerateUUID(),
		Topic:  topic,
		bus:    b,
		events: make(chan Event, b.buffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	b.subs[sub.ID] = sub

	// queued before the pump starts so it is always the first event
	sub.events <- newEvent(EventTypeConnected, topic, nil)

	go sub.pump(subCtx, msgs, b.keepAlive)

	b.logger.Debugw("subscribed to topic",
		"subscription_id", sub.ID,
		"topic", topic,
	)
	return sub, nil
}

// Unsubscribe stops sub and waits for it to release its resources. It is
// safe to call more than once and with a nil handle.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	sub.once.Do(func() {
		sub.cancel()
		<-sub.done
		b.remove(sub)
		b.logger.Debugw("unsubscribed from topic",
			"subscription_id", sub.ID,
			"topic", sub.Topic,
		)
	})
}

// Publish fans payload out to the current subscribers of topic. With no
// subscribers, or once the bus is closed, it does nothing.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	if b.SubscriberCount(topic) == 0 {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not encode change notification").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT), data)
	msg.Metadata.Set("topic", topic)

	if err := b.pubsub.Publish(ctx, topic, msg); err != nil {
		return ierr.WithError(err).
			WithHintf("Could not publish change notification on %s", topic).
			Mark(ierr.ErrSystem)
	}
	return nil
}

// SubscriberCount returns how many subscriptions are registered on topic
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0
	}
	n := 0
	for _, s := range b.subs {
		if s.Topic == topic {
			n++
		}
	}
	return n
}

// Close ends every subscription, rejects new ones and closes the pubsub
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		b.Unsubscribe(s)
	}

	b.logger.Infow("notification bus closed", "subscriptions", len(subs))
	return b.pubsub.Close()
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub.ID)
	b.mu.Unlock()
}

func (s *Subscription) pump(ctx context.Context, msgs <-chan *message.Message, keepAlive time.Duration) {
	defer close(s.done)
	defer close(s.events)
	// a subscription ended by its context still leaves the registry
	defer s.bus.remove(s)

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			msg.Ack()
			if ctx.Err() != nil {
				return
			}
			ev := newEvent(EventTypeChange, s.Topic, json.RawMessage(msg.Payload))
			ev.ID = msg.UUID
			s.deliver(ev)
		case <-ticker.C:
			s.deliver(newEvent(EventTypeKeepAlive, s.Topic, nil))
		}
	}
}

func (s *Subscription) deliver(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.bus.logger.Warnw("subscriber is not keeping up, dropping event",
			"subscription_id", s.ID,
			"topic", s.Topic,
			"event_type", ev.Type,
		)
	}
}
