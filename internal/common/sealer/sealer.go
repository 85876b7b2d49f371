package sealer

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrOpenFailed is returned when a sealed value cannot be authenticated
var ErrOpenFailed = errors.New("sealed value could not be opened")

// Sealer encrypts values before they are written to the store
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// secretboxSealer seals with NaCl secretbox under a key derived from a passphrase
type secretboxSealer struct {
	key [32]byte
}

// New returns a Sealer for the passphrase. An empty passphrase yields a
// pass-through Sealer.
func New(passphrase string) Sealer {
	if passphrase == "" {
		return Noop{}
	}
	return &secretboxSealer{key: sha256.Sum256([]byte(passphrase))}
}

// Seal returns nonce+box
func (s *secretboxSealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &s.key), nil
}

// Open reverses Seal
func (s *secretboxSealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrOpenFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

// Noop stores values as-is
type Noop struct{}

func (Noop) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }

func (Noop) Open(sealed []byte) ([]byte, error) { return sealed, nil }
