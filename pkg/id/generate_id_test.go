package id

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"testing"
)

var (
	reHex32  = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reHex48  = regexp.MustCompile(`^[a-f0-9]{48}$`)
	reAppNum = regexp.MustCompile(`^PMC-[0-9]{4}-[0-9]{6}$`)
)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	// length
	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	// lowercase hex only (no separators/prefixes)
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	// decodes to exactly 16 bytes
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewToken_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		tok := NewToken()
		if !reHex48.MatchString(tok) {
			t.Fatalf("not 48-char lowercase hex: %q", tok)
		}
		if _, ok := seen[tok]; ok {
			t.Fatalf("duplicate token after %d iterations: %q", i, tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestNewOTPCode_Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		code := NewOTPCode()
		if len(code) != 6 {
			t.Fatalf("code length = %d, want 6 (%q)", len(code), code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code not numeric: %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}

func TestNewApplicationNumber_Format(t *testing.T) {
	got := NewApplicationNumber(2026)
	if !reAppNum.MatchString(got) {
		t.Fatalf("unexpected application number format: %q", got)
	}
}
