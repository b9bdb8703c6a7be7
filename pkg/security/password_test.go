package security_test

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerify(t *testing.T) {
	h := security.NewHasher(testPasswordConfig())
	hash, err := h.Hash("very-secure-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=32768,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	match, err := h.Verify("very-secure-password", hash)
	if err != nil {
		t.Fatalf("Verify returned error for valid hash: %v", err)
	}
	if !match.OK || match.Rehash {
		t.Fatalf("expected current hash to match without rehash, got %+v", match)
	}

	match, err = h.Verify("bogus-password", hash)
	if err != nil {
		t.Fatalf("Verify returned error for invalid password: %v", err)
	}
	if match.OK {
		t.Fatal("Verify returned true for incorrect password")
	}
}

func TestVerifyFlagsWeakerArgonParams(t *testing.T) {
	weak := testPasswordConfig()
	weak.ArgonMemoryKB = 8 * 1024
	hash, err := security.NewHasher(weak).Hash("pw-123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	match, err := security.NewHasher(testPasswordConfig()).Verify("pw-123456", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !match.OK || !match.Rehash {
		t.Fatalf("expected match with rehash, got %+v", match)
	}
}

func TestVerifyAcceptsBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("imported"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	h := security.NewHasher(testPasswordConfig())

	match, err := h.Verify("imported", string(legacy))
	if err != nil || !match.OK || !match.Rehash {
		t.Fatalf("expected bcrypt hash to verify and ask for rehash, got %+v err=%v", match, err)
	}
	match, err = h.Verify("wrong", string(legacy))
	if err != nil || match.OK {
		t.Fatalf("expected mismatch without error, got %+v err=%v", match, err)
	}
}

func TestVerifyBadHash(t *testing.T) {
	h := security.NewHasher(testPasswordConfig())
	for _, encoded := range []string{
		"not-a-hash",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
	} {
		if _, err := h.Verify("irrelevant", encoded); err == nil {
			t.Fatalf("expected error for %q", encoded)
		}
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	if _, err := security.NewHasher(testPasswordConfig()).Hash(""); err == nil {
		t.Fatal("expected empty password to fail")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(14)
	if err != nil {
		t.Fatalf("GenerateTempPassword: %v", err)
	}
	if len(pw) != 14 {
		t.Fatalf("expected 14 chars, got %d", len(pw))
	}
	if strings.ContainsAny(pw, "0O1lI") {
		t.Fatalf("temporary password contains look-alike characters: %q", pw)
	}
	if _, err := security.GenerateTempPassword(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
