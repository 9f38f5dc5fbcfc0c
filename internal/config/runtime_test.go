package config

import (
	"path/filepath"
	"testing"
)

func TestLoadRuntimeFlagsDefaultsToLocal(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "")

	flags := LoadRuntimeFlags()
	if flags.Remote() {
		t.Fatal("sem DSN o modo deveria ser local")
	}
	if flags.Mode != ModeLocal {
		t.Fatalf("Mode = %q", flags.Mode)
	}
}

func TestLoadRuntimeFlagsRejectsPlaceholderDSN(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "YOUR_DATABASE_DSN")

	if LoadRuntimeFlags().Remote() {
		t.Fatal("o placeholder do .env de exemplo não deveria ligar o modo remoto")
	}
}

func TestLoadRuntimeFlagsRejectsTruncatedDSN(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "user:pass")

	if LoadRuntimeFlags().Remote() {
		t.Fatal("credencial curta demais não deveria ligar o modo remoto")
	}
}

func TestLoadRuntimeFlagsAcceptsRealDSN(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "portal:senha@tcp(db.senai.test:3306)/portal?parseTime=true")

	flags := LoadRuntimeFlags()
	if !flags.Remote() {
		t.Fatal("DSN válido deveria ligar o modo remoto")
	}
	if flags.DSN == "" {
		t.Fatal("o DSN deveria ser preservado nos flags")
	}
}

func TestLoadRuntimeFlagsTrimsDSN(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "  portal:senha@tcp(db.senai.test:3306)/portal  ")

	flags := LoadRuntimeFlags()
	if flags.DSN != "portal:senha@tcp(db.senai.test:3306)/portal" {
		t.Fatalf("DSN = %q, espaços deveriam ser aparados", flags.DSN)
	}
}

func TestLoadRuntimeFlagsPrefsPath(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DSN", "")
	t.Setenv("PORTAL_PREFS_PATH", "")

	flags := LoadRuntimeFlags()
	if !filepath.IsAbs(flags.PrefsPath) {
		t.Fatalf("PrefsPath deveria ser absoluto, veio %q", flags.PrefsPath)
	}

	custom := filepath.Join(t.TempDir(), "prefs.json")
	t.Setenv("PORTAL_PREFS_PATH", custom)
	if got := LoadRuntimeFlags().PrefsPath; got != custom {
		t.Fatalf("PrefsPath = %q, want %q", got, custom)
	}
}
