package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// KeyLength is the size of the PASETO v4 symmetric key.
const KeyLength = 32

// ResolveKey returns the session token key. A non-empty keyHex wins;
// otherwise the key is read from keyPath, or generated and written there.
func ResolveKey(keyHex, keyPath string) ([]byte, error) {
	if keyHex != "" {
		return decodeKey(keyHex)
	}
	return LoadOrGenerateKey(keyPath)
}

// LoadOrGenerateKey reads a hex-encoded key from path, creating one with
// mode 0600 when the file does not exist.
func LoadOrGenerateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return decodeKey(string(data))
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read auth key: %w", err)
	}

	key := make([]byte, KeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create auth key directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}

	return key, nil
}

func decodeKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if err != nil {
		return nil, fmt.Errorf("invalid auth key: not valid hex: %w", err)
	}
	if len(key) != KeyLength {
		return nil, fmt.Errorf("invalid auth key length: expected %d bytes, got %d", KeyLength, len(key))
	}
	return key, nil
}
