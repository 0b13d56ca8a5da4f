package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/inkwell-app/inkwell/internal/broker"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/models"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

const previewLength = 80

type MessageService struct {
	messages *repository.MessageRepository
	users    *repository.UserRepository
	broker   broker.Broker
	ids      *hashid.Codec
}

func NewMessageService(messages *repository.MessageRepository, users *repository.UserRepository, b broker.Broker, ids *hashid.Codec) *MessageService {
	return &MessageService{messages: messages, users: users, broker: b, ids: ids}
}

func (s *MessageService) CountForUser(userID uint64) (int64, error) {
	return s.messages.CountForUser(userID)
}

func (s *MessageService) ListForUser(userID uint64, offset, limit int) ([]models.Message, int64, error) {
	count, err := s.messages.CountForUser(userID)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to count messages")
	}
	messages, err := s.messages.ListForUser(userID, offset, limit)
	if err != nil {
		return nil, 0, httperr.Wrap(httperr.Internal, err, "failed to list messages")
	}
	return messages, count, nil
}

func (s *MessageService) Get(id uint64) (*models.Message, error) {
	message, err := s.messages.GetByID(id)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load message")
	}
	if message == nil || message.Deleted {
		return nil, httperr.New(httperr.NotFound, "message not found")
	}
	return message, nil
}

// Send persists a direct message and pushes a live event to the receiver's
// inbox channel. A broker failure does not fail the send; the message is
// already durable.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint64, content string) (*models.Message, error) {
	if content == "" {
		return nil, httperr.New(httperr.BadRequest, "content is required")
	}
	if senderID == receiverID {
		return nil, httperr.New(httperr.BadRequest, "can not message yourself")
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load receiver")
	}
	if receiver == nil || receiver.Deleted {
		return nil, httperr.New(httperr.NotFound, "receiver not found")
	}

	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to load sender")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, httperr.Wrap(httperr.Internal, err, "failed to send message")
	}

	s.publish(ctx, message, sender)

	logger.Log.Info("message sent",
		zap.Uint64("message_id", message.ID),
		zap.Uint64("sender_id", senderID),
		zap.Uint64("receiver_id", receiverID),
	)
	return message, nil
}

func (s *MessageService) publish(ctx context.Context, message *models.Message, sender *models.User) {
	if s.broker == nil {
		return
	}

	preview := message.Content
	if len(preview) > previewLength {
		// Back up to a rune boundary so the preview stays valid UTF-8.
		cut := previewLength
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}
	senderName := ""
	if sender != nil {
		senderName = sender.Username
	}

	event := broker.MessageEvent{
		MessageID: s.ids.MustEncode(entity.Messages, message.ID),
		SenderID:  s.ids.MustEncode(entity.Users, message.SenderID),
		Sender:    senderName,
		Preview:   preview,
		SentAt:    message.CreatedAt.Format(time.RFC3339),
	}
	recipient := s.ids.MustEncode(entity.Users, message.ReceiverID)

	if err := s.broker.PublishMessage(ctx, recipient, event); err != nil {
		logger.Log.Warn("failed to publish message event",
			zap.Uint64("message_id", message.ID),
			zap.Error(err),
		)
	}
}

func (s *MessageService) SoftDelete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.messages.MarkDeleted(id); err != nil {
		return httperr.Wrap(httperr.Internal, err, "failed to retire message")
	}
	return nil
}
