package usecase_test

import (
	"context"
	"testing"

	"swasthya-portal/config"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newConsultationUsecase(e *env) usecase.ConsultationUsecase {
	return usecase.NewConsultationUsecase(e.log, e.users, e.consultations, e.audit, config.VideoConfig{
		ICEServers: []string{"stun:stun.l.google.com:19302"},
	})
}

func TestConsultationUsecase_EndTwice(t *testing.T) {
	e := newEnv(t)
	consultations := newConsultationUsecase(e)
	doctor := e.sessionFor(t, "D001")
	ctx := context.Background()

	started, err := consultations.Start(ctx, doctor, &dto.StartConsultationRequest{PeerID: "P001"})
	require.NoError(t, err)
	require.Equal(t, "webrtc", started.Mode)
	require.Equal(t, "requesting-media", started.State)
	require.Equal(t, "In Progress", started.Duration)

	ended, err := consultations.End(ctx, e.sessionFor(t, "P001"), started.ID)
	require.NoError(t, err)
	require.Equal(t, "ended", ended.State)
	require.NotNil(t, ended.EndTime)

	_, err = consultations.End(ctx, doctor, started.ID)
	require.ErrorIs(t, err, usecase.ErrConsultationEnded)
}

func TestConsultationUsecase_MediaDeniedFallsBackToSimulation(t *testing.T) {
	e := newEnv(t)
	consultations := newConsultationUsecase(e)
	patient := e.sessionFor(t, "P002")
	ctx := context.Background()

	started, err := consultations.Start(ctx, patient, &dto.StartConsultationRequest{PeerID: "D002"})
	require.NoError(t, err)

	connected, err := consultations.ReportMedia(ctx, patient, started.ID, &dto.MediaReportRequest{Granted: false})
	require.NoError(t, err)
	require.Equal(t, "simulation", connected.Mode)
	require.Equal(t, "connected", connected.State)

	_, err = consultations.ReportMedia(ctx, patient, started.ID, &dto.MediaReportRequest{Granted: true})
	require.ErrorIs(t, err, usecase.ErrInvalidCallState)

	off := false
	muted, err := consultations.SetControls(ctx, patient, started.ID, &dto.CallControlsRequest{Mic: &off})
	require.NoError(t, err)
	require.False(t, muted.MicEnabled)
	require.True(t, muted.CameraEnabled)
}

func TestConsultationUsecase_Participants(t *testing.T) {
	e := newEnv(t)
	consultations := newConsultationUsecase(e)
	ctx := context.Background()

	_, err := consultations.Start(ctx, e.sessionFor(t, "P001"), &dto.StartConsultationRequest{PeerID: "P002"})
	require.ErrorIs(t, err, usecase.ErrInvalidPeer)

	_, err = consultations.Start(ctx, e.sessionFor(t, "PH001"), &dto.StartConsultationRequest{PeerID: "D001"})
	require.ErrorIs(t, err, usecase.ErrInvalidPeer)

	started, err := consultations.Start(ctx, e.sessionFor(t, "P001"), &dto.StartConsultationRequest{PeerID: "D001", Mode: "simulation"})
	require.NoError(t, err)

	_, err = consultations.End(ctx, e.sessionFor(t, "D002"), started.ID)
	require.ErrorIs(t, err, usecase.ErrNotParticipant)

	_, err = consultations.End(ctx, e.sessionFor(t, "D001"), "CONSULT-404")
	require.ErrorIs(t, err, usecase.ErrConsultationNotFound)

	history, err := consultations.History(ctx, e.sessionFor(t, "D001"))
	require.NoError(t, err)
	require.Len(t, history, 1)

	none, err := consultations.History(ctx, e.sessionFor(t, "D002"))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestConsultationUsecase_ConfigIsACopy(t *testing.T) {
	e := newEnv(t)
	consultations := newConsultationUsecase(e)

	cfg := consultations.Config()
	cfg.ICEServers[0] = "stun:changed"

	require.Equal(t, "stun:stun.l.google.com:19302", consultations.Config().ICEServers[0])
	require.Contains(t, cfg.VoiceAgentURL, "agent_id="+config.DefaultVoiceAgentID)
}

func TestVoiceAgentURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "agent_123", want: "https://elevenlabs.io/app/talk-to?agent_id=agent_123"},
		{in: "https://elevenlabs.io/app/talk-to?agent_id=agent_456", want: "https://elevenlabs.io/app/talk-to?agent_id=agent_456"},
		{in: "https://elevenlabs.io/app/conversational-ai/agents/agent_789/", want: "https://elevenlabs.io/app/talk-to?agent_id=agent_789"},
		{in: "  ", want: "https://elevenlabs.io/app/talk-to?agent_id=" + config.DefaultVoiceAgentID},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, usecase.VoiceAgentURL(tt.in), tt.in)
	}
}
