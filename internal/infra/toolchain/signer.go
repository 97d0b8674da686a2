package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces armored detached signatures for deployed files.
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile loads an armored private key from disk. The passphrase
// is required only for encrypted keys.
func NewSignerFromFile(path, passphrase string) (*Signer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open signing key: %w", err)
	}
	defer f.Close()
	return NewSigner(f, passphrase)
}

func NewSigner(r io.Reader, passphrase string) (*Signer, error) {
	ring, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}
	if len(ring) == 0 {
		return nil, errors.New("signing key ring is empty")
	}
	entity := ring[0]
	if entity.PrivateKey == nil {
		return nil, errors.New("signing key carries no private key")
	}
	if entity.PrivateKey.Encrypted {
		if err := entity.PrivateKey.Decrypt([]byte(passphrase)); err != nil {
			return nil, fmt.Errorf("decrypt signing key: %w", err)
		}
	}
	return &Signer{entity: entity}, nil
}

func (s *Signer) Sign(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, s.entity, bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("sign artifact: %w", err)
	}
	return buf.Bytes(), nil
}
