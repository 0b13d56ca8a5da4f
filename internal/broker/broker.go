package broker

import "context"

// MessageEvent is the payload pushed to a recipient's live inbox when a new
// direct message lands. Ids are already in their public obfuscated form.
type MessageEvent struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Sender    string `json:"sender"`
	Preview   string `json:"preview"`
	SentAt    string `json:"sent_at"`
}

// Broker fans new-message events out to live inbox subscribers.
type Broker interface {
	PublishMessage(ctx context.Context, recipient string, event MessageEvent) error
	SubscribeInbox(ctx context.Context, recipient string) (<-chan MessageEvent, func(), error)
	Close() error
}
