// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// Role is the kind of principal a client session acts as. It is
// derived from which token slot is populated and verified; it is never
// persisted on its own.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleCustomer  Role = "customer"
	RoleAdmin     Role = "admin"
)

// Session is the single active principal of a client instance.
// Token is empty exactly when Role is RoleAnonymous.
type Session struct {
	Role  Role
	Token string
}

// Anonymous is the session with no credentials.
var Anonymous = Session{Role: RoleAnonymous}

// IsAuthenticated reports whether the session carries a token.
func (session Session) IsAuthenticated() bool {
	return session.Role != RoleAnonymous && session.Token != ""
}

// AccessCode is a server-assigned numeric credential. A customer gets
// exactly one and it never changes.
type AccessCode string

// NormalizeAccessCode strips everything that is not a digit. Users
// paste codes with the grouping spaces the UI displays; the server
// expects the bare digits.
func NormalizeAccessCode(input string) AccessCode {
	var builder strings.Builder
	builder.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return AccessCode(builder.String())
}

// GroupAccessCode inserts a space after every fourth character for
// display. Whitespace already present is dropped first so grouping is
// idempotent.
func GroupAccessCode(code AccessCode) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(code))

	var builder strings.Builder
	count := 0
	for _, r := range compact {
		if count > 0 && count%4 == 0 {
			builder.WriteByte(' ')
		}
		builder.WriteRune(r)
		count++
	}
	return builder.String()
}

// String returns the grouped presentation form.
func (code AccessCode) String() string {
	return GroupAccessCode(code)
}

// User is a customer account as listed for administrators.
type User struct {
	ID        string     `json:"id"`
	Code      AccessCode `json:"code"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts numeric or string ids and codes and tolerates
// an absent or malformed createdAt.
func (user *User) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        json.RawMessage `json:"id"`
		Code      json.RawMessage `json:"code"`
		CreatedAt string          `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	user.ID = rawString(wire.ID)
	user.Code = AccessCode(rawString(wire.Code))
	user.CreatedAt = time.Time{}
	if wire.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, wire.CreatedAt); err == nil {
			user.CreatedAt = parsed
		}
	}
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}
