package config

import (
	"testing"

	"github.com/okheya/food-rescue/internal/utils"
)

func TestLoad_AdminPasscodeHashed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSCODE", "open-sesame")
	t.Setenv("BCRYPT_COST", "4")

	cfg := Load()
	if cfg.BcryptCost != 4 {
		t.Errorf("expected bcrypt cost 4, got %d", cfg.BcryptCost)
	}
	if cfg.AdminPasscodeHash == "" {
		t.Fatal("plaintext passcode was not hashed")
	}
	if cfg.AdminPasscodeHash == "open-sesame" {
		t.Fatal("passcode stored as plaintext")
	}
	if !utils.VerifyPassword(cfg.AdminPasscodeHash, "open-sesame") {
		t.Error("hashed passcode does not verify against the original")
	}
}

func TestLoad_AdminPasscodeHashWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSCODE_HASH", "$2a$10$precomputed")
	t.Setenv("ADMIN_PASSCODE", "ignored")

	cfg := Load()
	if cfg.AdminPasscodeHash != "$2a$10$precomputed" {
		t.Errorf("precomputed hash not preferred: %q", cfg.AdminPasscodeHash)
	}
}

func TestLoad_AdminDisabledByDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSCODE_HASH", "")
	t.Setenv("ADMIN_PASSCODE", "")

	if cfg := Load(); cfg.AdminPasscodeHash != "" {
		t.Errorf("expected empty hash, got %q", cfg.AdminPasscodeHash)
	}
}
