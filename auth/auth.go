// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingUserID   = errors.New("missing user id")
	ErrInvalidUserID   = errors.New("invalid user id")
)

// maxUserIDLen matches the longest owner reference the payment
// collaborator hands out.
const maxUserIDLen = 128

// ValidateAdminKey checks the provided key against the configured one.
// Both are hashed first so the comparison does not leak the key length.
func ValidateAdminKey(provided, expected string) error {
	if provided == "" || expected == "" {
		return ErrInvalidAdminKey
	}
	p := sha256.Sum256([]byte(provided))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(p[:], e[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// ValidateUserID trims an owner reference and checks it is usable
func ValidateUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingUserID
	}
	if len(id) > maxUserIDLen || strings.ContainsAny(id, "\r\n\t") {
		return "", ErrInvalidUserID
	}
	return id, nil
}
