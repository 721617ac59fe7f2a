package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/pubsub"
)

// PubSub implements both Publisher and Subscriber interfaces using watermill's gochannel
type PubSub struct {
	pubsub *gochannel.GoChannel
	logger *logger.Logger
}

// NewPubSub creates a new memory-based pubsub. Messages are not persisted:
// a subscriber only sees what is published after it subscribed.
func NewPubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	buffer := int64(16)
	if cfg != nil && cfg.Stream.BufferSize > 0 {
		buffer = int64(cfg.Stream.BufferSize)
	}

	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			Persistent: false,
			// Publish returns only after every subscriber acked, which keeps
			// per-topic delivery in publish order
			BlockPublishUntilSubscriberAck: true,
			OutputChannelBuffer:            buffer,
		},
		watermill.NewStdLogger(false, false),
	)

	return &PubSub{
		pubsub: goChannel,
		logger: logger,
	}
}

// Publish publishes a message on topic
func (p *PubSub) Publish(_ context.Context, topic string, msg *message.Message) error {
	return p.pubsub.Publish(topic, msg)
}

// Subscribe returns the messages published on topic until ctx is cancelled
func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, topic)
}

// Close closes both publisher and subscriber
func (p *PubSub) Close() error {
	p.logger.Debugw("closing in-memory pubsub")
	return p.pubsub.Close()
}
