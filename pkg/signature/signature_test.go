package signature_test

import (
	"testing"

	"swasthya-portal/pkg/signature"

	"github.com/stretchr/testify/require"
)

type content struct {
	PatientID string   `json:"patientId"`
	Medicines []string `json:"medicines"`
}

func TestSigner_DetectsTampering(t *testing.T) {
	signer, err := signature.NewSigner("rx-secret")
	require.NoError(t, err)

	original := content{PatientID: "P001", Medicines: []string{"Paracetamol 500mg"}}
	digest, sig, err := signer.Sign(original)
	require.NoError(t, err)
	require.Len(t, digest, 64)

	ok, err := signer.Verify(original, digest, sig)
	require.NoError(t, err)
	require.True(t, ok)

	tampered := original
	tampered.Medicines = []string{"Paracetamol 650mg"}
	ok, err = signer.Verify(tampered, digest, sig)
	require.NoError(t, err)
	require.False(t, ok)

	other, err := signature.NewSigner("another-secret")
	require.NoError(t, err)
	ok, err = other.Verify(original, digest, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := signature.NewSigner("")
	require.ErrorIs(t, err, signature.ErrEmptySecret)
}
