package stream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/pubsub/memory"
)

type BusSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Configuration
	bus *Bus
}

func TestBus(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = config.GetDefaultConfig()
	s.cfg.Stream.KeepAliveInterval = time.Hour
	s.cfg.Stream.BufferSize = 8
	s.bus = s.newBus(s.cfg)
}

func (s *BusSuite) TearDownTest() {
	s.NoError(s.bus.Close())
}

func (s *BusSuite) newBus(cfg *config.Configuration) *Bus {
	log := logger.NewNopLogger()
	return NewBus(cfg, memory.NewPubSub(cfg, log), log)
}

func (s *BusSuite) next(sub *Subscription) (Event, bool) {
	select {
	case ev, ok := <-sub.Events():
		return ev, ok
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return Event{}, false
	}
}

func (s *BusSuite) assertQuiet(sub *Subscription) {
	select {
	case ev, ok := <-sub.Events():
		if ok {
			s.Failf("unexpected event", "got %s on %s", ev.Type, ev.Topic)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *BusSuite) TestConnectedThenChange() {
	sub, err := s.bus.Subscribe(s.ctx, "suppliers")
	s.Require().NoError(err)
	defer sub.Close()

	other, err := s.bus.Subscribe(s.ctx, "invoices")
	s.Require().NoError(err)
	defer other.Close()

	s.Require().NoError(s.bus.Publish(s.ctx, "suppliers", "changed"))

	ev, ok := s.next(sub)
	s.Require().True(ok)
	s.Equal(EventTypeConnected, ev.Type)
	s.Equal("suppliers", ev.Topic)

	ev, ok = s.next(sub)
	s.Require().True(ok)
	s.Equal(EventTypeChange, ev.Type)
	var payload string
	s.Require().NoError(json.Unmarshal(ev.Payload, &payload))
	s.Equal("changed", payload)
	s.assertQuiet(sub)

	// the other topic only confirms its own connection
	ev, ok = s.next(other)
	s.Require().True(ok)
	s.Equal(EventTypeConnected, ev.Type)
	s.assertQuiet(other)
}

func (s *BusSuite) TestPublishOrderIsKept() {
	sub, err := s.bus.Subscribe(s.ctx, "stock")
	s.Require().NoError(err)
	defer sub.Close()

	for i := 0; i < 5; i++ {
		s.Require().NoError(s.bus.Publish(s.ctx, "stock", map[string]int{"seq": i}))
	}

	ev, _ := s.next(sub)
	s.Equal(EventTypeConnected, ev.Type)
	for i := 0; i < 5; i++ {
		ev, ok := s.next(sub)
		s.Require().True(ok)
		var body map[string]int
		s.Require().NoError(json.Unmarshal(ev.Payload, &body))
		s.Equal(i, body["seq"])
	}
}

func (s *BusSuite) TestUnsubscribeIsFinalAndIdempotent() {
	sub, err := s.bus.Subscribe(s.ctx, "customers")
	s.Require().NoError(err)
	s.Equal(1, s.bus.SubscriberCount("customers"))

	ev, _ := s.next(sub)
	s.Equal(EventTypeConnected, ev.Type)

	s.bus.Unsubscribe(sub)
	s.Equal(0, s.bus.SubscriberCount("customers"))

	s.NoError(s.bus.Publish(s.ctx, "customers", "changed"))
	_, ok := <-sub.Events()
	s.False(ok, "events channel is closed after unsubscribe")

	s.NotPanics(func() {
		s.bus.Unsubscribe(sub)
		sub.Close()
		s.bus.Unsubscribe(nil)
	})
}

func (s *BusSuite) TestPublishWithoutSubscribers() {
	s.NoError(s.bus.Publish(s.ctx, "products", "changed"))
}

func (s *BusSuite) TestKeepAlive() {
	cfg := config.GetDefaultConfig()
	cfg.Stream.KeepAliveInterval = 20 * time.Millisecond
	bus := s.newBus(cfg)
	defer bus.Close()

	sub, err := bus.Subscribe(s.ctx, "stock")
	s.Require().NoError(err)
	defer sub.Close()

	ev, _ := s.next(sub)
	s.Equal(EventTypeConnected, ev.Type)
	ev, ok := s.next(sub)
	s.Require().True(ok)
	s.Equal(EventTypeKeepAlive, ev.Type)
	s.Empty(ev.Payload)
}

func (s *BusSuite) TestContextCancelReleasesSubscription() {
	ctx, cancel := context.WithCancel(s.ctx)
	sub, err := s.bus.Subscribe(ctx, "payments")
	s.Require().NoError(err)

	cancel()
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		s.FailNow("subscription did not stop")
	}
	s.Equal(0, s.bus.SubscriberCount("payments"))

	// still safe to unsubscribe afterwards
	s.NotPanics(func() { sub.Close() })
}

func (s *BusSuite) TestCloseEndsSubscriptions() {
	bus := s.newBus(s.cfg)
	sub, err := bus.Subscribe(s.ctx, "invoices")
	s.Require().NoError(err)

	s.Require().NoError(bus.Close())
	<-sub.Done()

	_, err = bus.Subscribe(s.ctx, "invoices")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.NoError(bus.Publish(s.ctx, "invoices", "changed"))
	s.NoError(bus.Close())
}

func (s *BusSuite) TestSubscribeRequiresTopic() {
	_, err := s.bus.Subscribe(s.ctx, "")
	s.True(ierr.IsValidation(err))
}

func (s *BusSuite) TestConcurrentSubscribers() {
	const n = 20
	subs := make(chan *Subscription, n)

	var wg conc.WaitGroup
	for i := 0; i < n; i++ {
		wg.Go(func() {
			sub, err := s.bus.Subscribe(s.ctx, "stock")
			s.NoError(err)
			subs <- sub
		})
	}
	wg.Wait()
	close(subs)

	s.Equal(n, s.bus.SubscriberCount("stock"))
	s.Require().NoError(s.bus.Publish(s.ctx, "stock", "changed"))

	for sub := range subs {
		ev, _ := s.next(sub)
		s.Equal(EventTypeConnected, ev.Type)
		ev, _ = s.next(sub)
		s.Equal(EventTypeChange, ev.Type)
		sub.Close()
	}
	s.Equal(0, s.bus.SubscriberCount("stock"))
}
