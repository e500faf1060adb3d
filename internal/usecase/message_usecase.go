package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
)

type MessageUsecase interface {
	Send(ctx context.Context, session *entity.Session, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Inbox(ctx context.Context, session *entity.Session) ([]dto.MessageResponse, error)
}

type messageUsecase struct {
	log         *logrus.Logger
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewMessageUsecase(log *logrus.Logger, userRepo repository.UserRepository, messageRepo repository.MessageRepository) MessageUsecase {
	return &messageUsecase{
		log:         log,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

func (u *messageUsecase) Send(ctx context.Context, session *entity.Session, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	recipient, err := u.userRepo.FindByID(ctx, req.ToID)
	if err != nil {
		u.log.Warnf("Failed to find recipient %s: %+v", req.ToID, err)
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	message := entity.Message{
		ID:       entity.NewID(entity.PrefixMessage),
		FromID:   session.UserID(),
		FromName: session.User.Name,
		ToID:     recipient.ID,
		ToName:   recipient.Name,
		Body:     req.Body,
		SentAt:   time.Now(),
	}

	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to send message: %+v", err)
		return nil, err
	}

	return &converter.MessagesToResponses([]entity.Message{message}, session.UserID())[0], nil
}

// Inbox returns messages sent to or by the session user, newest first
func (u *messageUsecase) Inbox(ctx context.Context, session *entity.Session) ([]dto.MessageResponse, error) {
	messages, err := u.messageRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find messages: %+v", err)
		return nil, err
	}

	own := make([]entity.Message, 0)
	for _, m := range messages {
		if m.FromID == session.UserID() || m.ToID == session.UserID() {
			own = append(own, m)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].SentAt.After(own[j].SentAt) })

	return converter.MessagesToResponses(own, session.UserID()), nil
}
