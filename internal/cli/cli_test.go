package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/dagrapport/internal/cache"
	"github.com/ppiankov/dagrapport/internal/model"
)

// execute runs the root command with a scratch HOME so no user config leaks in
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	exempt, checkForm, splitJSON = false, "", false
	newOut, newGenerate = "", false

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("Expected version %s in output, got %q", Version, out)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		flagged bool
		want    string
	}{
		{
			name:    "interpretation",
			args:    []string{"check", "Sam was erg druk vandaag"},
			flagged: true,
			want:    "druk",
		},
		{
			name:    "stdin",
			stdin:   "Hij wilde niet mee naar buiten",
			args:    []string{"check", "-"},
			flagged: true,
			want:    "wilde niet",
		},
		{
			name: "camera language",
			args: []string{"check", "Sam liep naar de deur en pakte zijn jas."},
			want: "Geen camera-taal",
		},
		{
			name: "exempt signal word",
			args: []string{"check", "--exempt", "moe en overprikkeld"},
			want: "Geen camera-taal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)
			if tt.flagged != errors.Is(err, ErrFlagged) {
				t.Fatalf("Expected flagged=%v, got err %v", tt.flagged, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q in output, got %q", tt.want, out)
			}
		})
	}
}

func TestCheck_NoInput(t *testing.T) {
	_, _, err := execute(t, "", "check")
	if !errors.Is(err, errNoInput) {
		t.Errorf("Expected errNoInput, got %v", err)
	}
}

func TestSplit_JSON(t *testing.T) {
	out, _, err := execute(t, "", "split", "--json", "We gingen naar het bos. Daarna aten we. Tot slot lazen we.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var seg model.TimelineSegments
	if err := json.Unmarshal([]byte(out), &seg); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if seg.Start != "We gingen naar het bos." || seg.Mid != "aten we." || seg.End != "lazen we." {
		t.Errorf("Unexpected segments: %+v", seg)
	}
}

func TestNew_WritesYAML(t *testing.T) {
	answers := strings.Join([]string{
		"Sam JK",
		"We liepen naar het bos. Daarna aten we.",
		"j",
		"Samen spelen",
		"Sam gaf de bal door.",
		"n",
		"n",
		"",
		"",
	}, "\n") + "\n"

	out, stderr, err := execute(t, answers, "new")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n%s", err, stderr)
	}

	var data model.ReportData
	if err := yaml.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("Expected YAML output, got %q: %v", out, err)
	}
	if data.ChildName != "Sam" || data.ActivitiesMid != "aten we." {
		t.Errorf("Unexpected form: %+v", data)
	}
	if !strings.Contains(stderr, "Kind en initialen") {
		t.Error("Expected questions on stderr")
	}
}

func TestNew_StopsOnEOF(t *testing.T) {
	_, _, err := execute(t, "Sam JK\n", "new")
	if err == nil {
		t.Fatal("Expected error when input ends early")
	}
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	if err := initConfigFile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected config file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}

	raw, _ := os.ReadFile(path)
	var cfg model.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("Expected valid YAML: %v", err)
	}
	if cfg.LLM.Provider != model.DefaultConfig().LLM.Provider {
		t.Errorf("Expected default provider, got %q", cfg.LLM.Provider)
	}

	if err := initConfigFile(path); err == nil {
		t.Error("Expected error for existing config file")
	}
}

func TestMaskSecrets(t *testing.T) {
	cfg := *model.DefaultConfig()
	cfg.LLM.APIKey = "secret"

	masked := maskSecrets(cfg)
	if masked.LLM.APIKey != "****" {
		t.Errorf("Expected masked key, got %q", masked.LLM.APIKey)
	}
	if cfg.LLM.APIKey != "secret" {
		t.Error("Expected original config to stay untouched")
	}
}

func TestReportBody(t *testing.T) {
	md := "# Dagrapportage Sam\n\n_15-10-2026 09:00 · Begeleider JK_\n\n**ALGEMEEN**\nSam speelde.\n\n**DOELEN**\nSam oefende.\n\n## Camera-taal signalen\n\n- `x`"

	got := reportBody(md)
	want := "**ALGEMEEN**\nSam speelde.\n\n**DOELEN**\nSam oefende."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCachePrune(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAGRAPPORT_CACHE_DIR", dir)

	c := cache.NewDiskCache(dir, time.Minute)
	_ = c.Set("fresh", []byte("a"), 0)
	_ = c.Set("stale", []byte("b"), -time.Second)

	out, _, err := execute(t, "", "cache", "prune")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "1 answer(s) kept") {
		t.Errorf("Unexpected output: %q", out)
	}

	if _, _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.Get("fresh"); ok {
		t.Error("Expected cache to be cleared")
	}
}
