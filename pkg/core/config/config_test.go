package config

import (
	"os"
	"path/filepath"
	"testing"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/pkg/precision"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.General.DefaultProfile != ProfileDefault {
		t.Errorf("General.DefaultProfile = %v, want %v", cfg.General.DefaultProfile, ProfileDefault)
	}

	builtin := map[string]int{
		ProfileDefault: 0,
		ProfileSingle:  32,
		ProfileDouble:  64,
		ProfileQuad:    128,
	}
	for name, bits := range builtin {
		p, ok := cfg.Profiles[name]
		if !ok {
			t.Errorf("profile %s missing", name)
			continue
		}
		if p.IEEE != bits {
			t.Errorf("profile %s IEEE = %d, want %d", name, p.IEEE, bits)
		}
	}
}

func TestConfig_applyDefaultsKeepsProfiles(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{
		ProfileDouble: {Precision: intPtr(60)},
	}}
	cfg.applyDefaults()

	if p := cfg.Profiles[ProfileDouble]; p.IEEE != 0 || *p.Precision != 60 {
		t.Errorf("user profile %s was replaced: %+v", ProfileDouble, p)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"mpnum.toml", "toml"},
		{"mpnum.yaml", "yaml"},
		{"mpnum.YML", "yaml"},
		{"mpnum.conf", "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Format(tt.path); got != tt.want {
				t.Errorf("Format(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/mpnum.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() error = %v, want not found", err)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "mpnum.toml", `
[general]
log_level = "debug"
default_profile = "wide"

[profiles.wide]
precision = 200
round = "RoundToZero"
imag_round = "down"
emin = -5000
emax = 5000
allow_complex = true
traps = ["invalid", "divzero"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text (default)", cfg.General.LogFormat)
	}

	ctx, err := cfg.Context("")
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}
	if ctx.Precision() != 200 {
		t.Errorf("Precision() = %d, want 200", ctx.Precision())
	}
	if ctx.Round() != precision.RoundToZero || ctx.ImagRound() != precision.RoundDown {
		t.Errorf("rounding = %v/%v, want RoundToZero/RoundDown", ctx.Round(), ctx.ImagRound())
	}
	if ctx.Emin() != -5000 || ctx.Emax() != 5000 {
		t.Errorf("exponent range = [%d, %d], want [-5000, 5000]", ctx.Emin(), ctx.Emax())
	}
	if !ctx.AllowComplex() {
		t.Error("AllowComplex() = false, want true")
	}
	if want := precision.Invalid | precision.DivZero; ctx.Traps() != want {
		t.Errorf("Traps() = %v, want %v", ctx.Traps(), want)
	}
	if ctx.ReadOnly() {
		t.Error("profile context is read-only")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "mpnum.yaml", `
general:
  log_format: json
profiles:
  exact:
    rational_division: true
    traps: []
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.LogFormat != "json" {
		t.Errorf("General.LogFormat = %v, want json", cfg.General.LogFormat)
	}
	ctx, err := cfg.Context("exact")
	if err != nil {
		t.Fatalf("Context() error = %v", err)
	}
	if !ctx.RationalDivision() {
		t.Error("RationalDivision() = false, want true")
	}
	if ctx.Traps() != 0 {
		t.Errorf("Traps() = %v, want none", ctx.Traps())
	}
	if ctx.Precision() != precision.DefaultPrecision {
		t.Errorf("Precision() = %d, want default %d", ctx.Precision(), precision.DefaultPrecision)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "mpnum.toml", "[profiles.p]\nprecison = 10\n"},
		{"yaml", "mpnum.yaml", "profiles:\n  p:\n    precison: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.file, tt.content)); err == nil {
				t.Error("Load() expected error for misspelled key")
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "mpnum.toml", "[general\n"))
	if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("Load() error = %v, want config error", err)
	}
}

func TestProfile_Options(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		check   func(*precision.Context) bool
		wantErr bool
	}{
		{
			name:    "empty",
			profile: Profile{},
			check:   func(c *precision.Context) bool { return c.Equal(mustDefault(t)) },
		},
		{
			name:    "ieee base",
			profile: Profile{IEEE: 64},
			check: func(c *precision.Context) bool {
				return c.Precision() == 53 && c.Emin() == -1073 && c.Emax() == 1024 && c.Subnormalize()
			},
		},
		{
			name:    "ieee override",
			profile: Profile{IEEE: 32, Subnormalize: boolPtr(false), Precision: intPtr(30)},
			check: func(c *precision.Context) bool {
				return c.Precision() == 30 && !c.Subnormalize() && c.Emax() == 128
			},
		},
		{
			name:    "component precision",
			profile: Profile{RealPrec: intPtr(20), ImagPrec: intPtr(40), RealRound: "up"},
			check: func(c *precision.Context) bool {
				return c.EffectiveRealPrecision() == 20 && c.EffectiveImagPrecision() == 40 &&
					c.EffectiveRealRound() == precision.RoundUp
			},
		},
		{name: "bad ieee", profile: Profile{IEEE: 16}, wantErr: true},
		{name: "bad round", profile: Profile{Round: "sideways"}, wantErr: true},
		{name: "bad trap", profile: Profile{Traps: []string{"overflow", "boom"}}, wantErr: true},
		{name: "bad precision", profile: Profile{Precision: intPtr(0)}, wantErr: true},
		{name: "bad range", profile: Profile{Emin: intPtr(10), Emax: intPtr(-10)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := tt.profile.Context()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Context() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !tt.check(ctx) {
				t.Errorf("Context() =\n%s", ctx)
			}
		})
	}
}

func TestConfig_ContextUnknownProfile(t *testing.T) {
	cfg := Default()
	_, err := cfg.Context("missing")
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("Context() error = %v, want invalid config", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"defaults", Default(), false},
		{
			name: "missing default profile",
			cfg: &Config{
				General:  GeneralConfig{DefaultProfile: "nope"},
				Profiles: map[string]Profile{},
			},
			wantErr: true,
		},
		{
			name: "invalid profile",
			cfg: &Config{
				General:  GeneralConfig{DefaultProfile: "ok"},
				Profiles: map[string]Profile{"ok": {}, "broken": {Round: "never"}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("MPNUM_TEST_DIR", "/tmp/mpnum")

	cfg := &Config{General: GeneralConfig{HistoryFile: "$MPNUM_TEST_DIR/history"}}
	cfg.expandEnvVars()

	if cfg.General.HistoryFile != "/tmp/mpnum/history" {
		t.Errorf("HistoryFile = %v, want /tmp/mpnum/history", cfg.General.HistoryFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "custom.toml", "[general]\nlog_level = \"error\"\n")
	t.Setenv("MPNUM_CONFIG", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.LogLevel != "error" {
		t.Errorf("General.LogLevel = %v, want error", cfg.General.LogLevel)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("MPNUM_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	_, err := LoadFromEnv()
	if err == nil {
		t.Error("LoadFromEnv() expected error when no config found")
	}
}

func mustDefault(t *testing.T) *precision.Context {
	t.Helper()
	c, err := precision.New()
	if err != nil {
		t.Fatal(err)
	}
	return c
}
