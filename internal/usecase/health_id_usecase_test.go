package usecase_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func TestHealthIDPayload_EncodeDecode(t *testing.T) {
	payload := &entity.HealthIDPayload{HID: "HID-1", Name: "Amit Patel", Age: 35, BloodType: "O+"}

	encoded, err := usecase.EncodeHealthIDPayload(payload)
	require.NoError(t, err)

	decoded, err := usecase.DecodeHealthIDPayload(encoded)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)

	_, err = usecase.DecodeHealthIDPayload("not base64!")
	require.Error(t, err)

	_, err = usecase.DecodeHealthIDPayload(base64.StdEncoding.EncodeToString([]byte(`{"name":"x"}`)))
	require.ErrorIs(t, err, usecase.ErrInvalidHealthID)
}

func TestHealthIDUsecase_GetOrCreateIsStable(t *testing.T) {
	e := newEnv(t)
	healthIDs := usecase.NewHealthIDUsecase(e.log, e.users, e.healthIDs)
	session := e.sessionFor(t, "P001")
	ctx := context.Background()

	first, err := healthIDs.GetOrCreate(ctx, session)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.HID, "HID-"))

	second, err := healthIDs.GetOrCreate(ctx, session)
	require.NoError(t, err)
	require.Equal(t, first.HID, second.HID)

	scanned, err := healthIDs.Scan(ctx, first.QRCode)
	require.NoError(t, err)
	require.Equal(t, first.HID, scanned.HID)
	require.Equal(t, "O+", scanned.BloodType)

	_, err = healthIDs.Scan(ctx, "garbage")
	require.ErrorIs(t, err, usecase.ErrInvalidHealthID)

	emergency, err := healthIDs.Emergency(ctx, session)
	require.NoError(t, err)
	require.Equal(t, first.HID, emergency.HealthID)
	require.Equal(t, "Amit Patel", emergency.Name)
}
