package model

//
// identity.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

const (
	RoleAdmin = "admin"
)

// Identity is authenticated user profile. Immutable after creation.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// DisplayName return name or email when name is not set.
func (i *Identity) DisplayName() string {
	return nvl(i.Name, i.Email, i.ID)
}

func (i *Identity) MarshalZerologObject(event *zerolog.Event) {
	event.Str("id", i.ID).
		Str("email", i.Email).
		Str("role", i.Role)
}

// EncodeIdentity serialize identity to persisted form.
func EncodeIdentity(i *Identity) (string, error) {
	data, err := json.Marshal(i)
	if err != nil {
		return "", fmt.Errorf("encode identity error: %w", err)
	}

	return string(data), nil
}

// DecodeIdentity parse persisted identity. Identity without id is invalid.
func DecodeIdentity(data string) (*Identity, error) {
	var ident Identity

	if err := json.Unmarshal([]byte(data), &ident); err != nil {
		return nil, fmt.Errorf("decode identity error: %w", err)
	}

	if ident.ID == "" {
		return nil, ErrInvalidIdentity
	}

	return &ident, nil
}
