// ABOUTME: Tests for the profile store.
// ABOUTME: Covers unset nickname, roundtrip, and validation.
package storage

import "testing"

func TestProfileNicknameUnset(t *testing.T) {
	p := NewProfileStore(t.TempDir())
	name, err := p.GetNickname()
	if err != nil {
		t.Fatalf("GetNickname error: %v", err)
	}
	if name != "" {
		t.Errorf("expected empty nickname, got %q", name)
	}
}

func TestProfileNicknameRoundtrip(t *testing.T) {
	p := NewProfileStore(t.TempDir())
	if err := p.SetNickname("  구름  "); err != nil {
		t.Fatalf("SetNickname error: %v", err)
	}
	name, err := p.GetNickname()
	if err != nil {
		t.Fatalf("GetNickname error: %v", err)
	}
	if name != "구름" {
		t.Errorf("expected trimmed nickname, got %q", name)
	}
}

func TestProfileNicknameEmpty(t *testing.T) {
	p := NewProfileStore(t.TempDir())
	if err := p.SetNickname("   "); err == nil {
		t.Error("expected error for blank nickname")
	}
}
