package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAccountFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "account.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write account file: %v", err)
	}
	return path
}

func TestLoadAccount(t *testing.T) {
	path := writeAccountFile(t, "addr: imap.example.org:143\nusername: tim\npassword: tanstaaftanstaaf\n")

	acct, err := loadAccount(path)
	if err != nil {
		t.Fatalf("loadAccount() = %v", err)
	}
	if acct.Addr != "imap.example.org:143" {
		t.Errorf("acct.Addr = %v, want %v", acct.Addr, "imap.example.org:143")
	}
	if acct.Username != "tim" {
		t.Errorf("acct.Username = %v, want %v", acct.Username, "tim")
	}
	if acct.Password != "tanstaaftanstaaf" {
		t.Errorf("acct.Password = %v, want %v", acct.Password, "tanstaaftanstaaf")
	}
}

func TestLoadAccountMissingAddr(t *testing.T) {
	path := writeAccountFile(t, "username: tim\n")

	if acct, err := loadAccount(path); err == nil {
		t.Fatalf("loadAccount() = %v, want error", acct)
	}
}

func TestLoadAccountBadYAML(t *testing.T) {
	path := writeAccountFile(t, "addr: [\n")

	if acct, err := loadAccount(path); err == nil {
		t.Fatalf("loadAccount() = %v, want error", acct)
	}
}

func TestLoadAccountMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	if acct, err := loadAccount(path); err == nil {
		t.Fatalf("loadAccount() = %v, want error", acct)
	}
}
