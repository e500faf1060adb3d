// Package signature seals records with a SHA-256 digest and an HMAC-SHA256
// signature so later tampering can be detected.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

var ErrEmptySecret = errors.New("signing secret is empty")

type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Digest returns the hex SHA-256 of the JSON encoding of content. Struct
// fields encode in declaration order, so the encoding is stable.
func Digest(content any) (string, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Sign returns the digest of content and its hex HMAC signature
func (s *Signer) Sign(content any) (digest string, sig string, err error) {
	digest, err = Digest(content)
	if err != nil {
		return "", "", err
	}
	return digest, s.mac(digest), nil
}

// Verify recomputes the digest of content and checks both the digest and the
// signature. Comparisons are constant time.
func (s *Signer) Verify(content any, digest, sig string) (bool, error) {
	current, err := Digest(content)
	if err != nil {
		return false, err
	}
	if !hmac.Equal([]byte(current), []byte(digest)) {
		return false, nil
	}
	return hmac.Equal([]byte(s.mac(digest)), []byte(sig)), nil
}

func (s *Signer) mac(digest string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(digest))
	return hex.EncodeToString(h.Sum(nil))
}
