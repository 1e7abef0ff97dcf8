// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAccessCode(t *testing.T) {
	tests := map[string]AccessCode{
		"1234 5678":        "12345678",
		"  1234-5678-9012": "123456789012",
		"12345678":         "12345678",
		"abc":              "",
		"":                 "",
	}
	for input, want := range tests {
		if got := NormalizeAccessCode(input); got != want {
			t.Errorf("NormalizeAccessCode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGroupAccessCode(t *testing.T) {
	tests := map[AccessCode]string{
		"12345678":   "1234 5678",
		"1234567890": "1234 5678 90",
		"123":        "123",
		"1234 5678":  "1234 5678",
		"":           "",
		// Grouping counts characters, not bytes.
		"éééééé":   "éééé éé",
		"１２３４５６７８": "１２３４ ５６７８",
	}
	for code, want := range tests {
		if got := GroupAccessCode(code); got != want {
			t.Errorf("GroupAccessCode(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestGroupNormalizeRoundTrip(t *testing.T) {
	code := AccessCode("9876543210123456")
	if got := NormalizeAccessCode(GroupAccessCode(code)); got != code {
		t.Errorf("Normalize(Group(%q)) = %q", code, got)
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	if Anonymous.IsAuthenticated() {
		t.Error("anonymous session reports authenticated")
	}
	if !(Session{Role: RoleCustomer, Token: "t"}).IsAuthenticated() {
		t.Error("customer session with token reports unauthenticated")
	}
	if (Session{Role: RoleAdmin}).IsAuthenticated() {
		t.Error("admin session without token reports authenticated")
	}
}

func TestUserUnmarshal(t *testing.T) {
	var users []User
	data := `[{"id": 3, "code": 12345678, "createdAt": "2026-01-02T03:04:05Z"}, {"id": "x", "code": "8765"}]`
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].ID != "3" || users[0].Code != "12345678" {
		t.Errorf("users[0] = %+v", users[0])
	}
	if users[0].CreatedAt.IsZero() {
		t.Error("users[0].CreatedAt should be parsed")
	}
	if !users[1].CreatedAt.IsZero() {
		t.Error("users[1].CreatedAt should be zero")
	}
}
