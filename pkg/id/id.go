// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes.
const (
	User   = "user"
	Prompt = "prompt"
	Tag    = "tag"
	Note   = "note"
)

// Generate creates an identifier of the form prefix-nanoid (e.g. "prompt-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	v, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + v, nil
}
