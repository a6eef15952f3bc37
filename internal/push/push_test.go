package push

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestGenerateVAPIDKeys(t *testing.T) {
	pub, priv, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate VAPID keys: %v", err)
	}

	if pub == "" {
		t.Error("expected non-empty public key")
	}
	if priv == "" {
		t.Error("expected non-empty private key")
	}

	// Public key should be base64url-encoded, 65 bytes uncompressed P-256 point
	pubBytes, err := base64.RawURLEncoding.DecodeString(pub)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}
	if len(pubBytes) != 65 {
		t.Errorf("public key length = %d, want 65", len(pubBytes))
	}

	// Private key should be base64url-encoded, 32 bytes P-256 scalar
	privBytes, err := base64.RawURLEncoding.DecodeString(priv)
	if err != nil {
		t.Fatalf("decode private key: %v", err)
	}
	if len(privBytes) != 32 {
		t.Errorf("private key length = %d, want 32", len(privBytes))
	}

	// Generate again, keys must differ
	pub2, _, _ := GenerateVAPIDKeys()
	if pub == pub2 {
		t.Error("expected different keys on second generation")
	}
}

func TestTaskCompletedPayload(t *testing.T) {
	p := TaskCompleted("Alex", "Cook dinner", 25)

	if p.Title != "Task completed" {
		t.Errorf("title = %q", p.Title)
	}
	if !strings.Contains(p.Body, "Alex") || !strings.Contains(p.Body, "Cook dinner") || !strings.Contains(p.Body, "+25") {
		t.Errorf("body = %q", p.Body)
	}
	if p.Tag != "task-completed" {
		t.Errorf("tag = %q", p.Tag)
	}
}

func TestRewardRedeemedPayload(t *testing.T) {
	p := RewardRedeemed("Sam", "Movie night", 50)

	if p.Title != "Reward redeemed" {
		t.Errorf("title = %q", p.Title)
	}
	if !strings.Contains(p.Body, "Sam") || !strings.Contains(p.Body, "-50") {
		t.Errorf("body = %q", p.Body)
	}
	if p.URL != "/rewards" {
		t.Errorf("url = %q", p.URL)
	}
}
