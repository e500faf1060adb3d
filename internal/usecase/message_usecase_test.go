package usecase_test

import (
	"context"
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func TestMessageUsecase_SendAndInbox(t *testing.T) {
	e := newEnv(t)
	messages := usecase.NewMessageUsecase(e.log, e.users, e.messages)
	patient := e.sessionFor(t, "P001")
	doctor := e.sessionFor(t, "D001")
	ctx := context.Background()

	sent, err := messages.Send(ctx, patient, &dto.SendMessageRequest{ToID: "D001", Body: "Is my report ready?"})
	require.NoError(t, err)
	require.Equal(t, "Dr. Rajesh Kumar", sent.ToName)
	require.False(t, sent.Incoming)

	_, err = messages.Send(ctx, patient, &dto.SendMessageRequest{ToID: "X404", Body: "hello"})
	require.ErrorIs(t, err, usecase.ErrRecipientNotFound)

	inbox, err := messages.Inbox(ctx, doctor)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.True(t, inbox[0].Incoming)

	other, err := messages.Inbox(ctx, e.sessionFor(t, "P002"))
	require.NoError(t, err)
	require.Empty(t, other)
}
