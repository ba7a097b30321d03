package config

import (
	"path/filepath"
	"testing"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %v, want %v", cfg.Port(), DefaultPort)
	}
	if cfg.Tool() != DefaultTool {
		t.Errorf("Tool() = %v, want %v", cfg.Tool(), DefaultTool)
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat() = %v, want pretty", cfg.LogFormat())
	}
	if cfg.KeepIntermediate() {
		t.Error("KeepIntermediate() should default to false")
	}
}

func TestAppConfig_DerivedDirs(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDataDir("/srv/lift"))

	if got := cfg.ChainDir(); got != filepath.Join("/srv/lift", "data") {
		t.Errorf("ChainDir() = %v", got)
	}
	if got := cfg.WorkDir(); got != filepath.Join("/srv/lift", "temp") {
		t.Errorf("WorkDir() = %v", got)
	}
	if got := cfg.DBURL(); got != "sqlite:///"+filepath.Join("/srv/lift", "lift_coords.db") {
		t.Errorf("DBURL() = %v", got)
	}

	cfg = NewAppConfigWithOptions(WithDataDir("/srv/lift"), WithChainDir("/chains"), WithWorkDir("/scratch"))
	if cfg.ChainDir() != "/chains" || cfg.WorkDir() != "/scratch" {
		t.Errorf("overrides ignored: %v %v", cfg.ChainDir(), cfg.WorkDir())
	}
}

func TestAppConfig_EnsureDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lift")
	cfg := NewAppConfigWithOptions(WithDataDir(dir))

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	// idempotent
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs second call: %v", err)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ParseList() = %v", got)
	}
	if ParseList("") != nil {
		t.Error("ParseList(\"\") should be nil")
	}
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	got := DefaultDataDir()
	if filepath.Base(got) != AppName {
		t.Errorf("DefaultDataDir() = %v, want basename %v", got, AppName)
	}
}

func TestAppConfig_Apply(t *testing.T) {
	base := NewAppConfigWithOptions(WithTool("/opt/ucsc/liftOver"))
	cfg := base.Apply(WithPort(9000))

	if cfg.Port() != 9000 {
		t.Errorf("Port() = %v, want 9000", cfg.Port())
	}
	if cfg.Tool() != "/opt/ucsc/liftOver" {
		t.Errorf("Tool() = %v", cfg.Tool())
	}
	if base.Port() != DefaultPort {
		t.Errorf("Apply mutated the receiver: Port() = %v", base.Port())
	}
}
