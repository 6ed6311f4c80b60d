package bootstrap

import (
	"context"
	"testing"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":       ":8080",
		"  ":     ":8080",
		"9000":   ":9000",
		":7000":  ":7000",
		" 8081 ": ":8081",
	}
	for input, want := range cases {
		if got := normalizeAddr(input); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMaxBodyBytesFitsEncodedPhoto(t *testing.T) {
	if maxBodyBytes(0) != 0 {
		t.Fatalf("expected zero limit to defer to the server default")
	}
	photo := 3 << 20
	if got := maxBodyBytes(photo); got < int64(photo)*4/3 {
		t.Fatalf("limit %d cannot hold a base64 photo of %d bytes", got, photo)
	}
}

func TestBuildAPIRequiresDSN(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CREDENTIAL_SECRET", "s3cret")
	t.Setenv("POSTGRES_DSN", "")
	if _, err := BuildAPI(context.Background()); err == nil {
		t.Fatalf("expected missing POSTGRES_DSN to fail")
	}
	if err := Migrate(context.Background()); err == nil {
		t.Fatalf("expected migrate without POSTGRES_DSN to fail")
	}
}
