package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	fixturePath = "../../testdata/fixtures/dates.html"
	dumpPath    = "../../testdata/fixtures/dates_dump.html"
)

// execute runs the root command with args and returns stdout, stderr and the exit code.
func execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	code := run(cmd, args, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestConvert_Fixture(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, code := execute(t, "", "convert", "--output-dir", dir, fixturePath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	for _, want := range []string{
		"Calendar file created: " + filepath.Join(dir, "class_schedule.ics"),
		"Classes: 3",
		"Events: 3",
		"Skipped 1 sessions:",
		"فیزیک پایه, session 2: end_unconvertible",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "class_schedule.ics"))
	if err != nil {
		t.Fatalf("calendar not written: %v", err)
	}
	if got := strings.Count(string(data), "BEGIN:VEVENT"); got != 3 {
		t.Errorf("calendar has %d events, want 3", got)
	}
}

func TestConvert_StdinJSON(t *testing.T) {
	html, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	stdout, stderr, code := execute(t, string(html), "convert", "--output-dir", dir, "-o", "term.ics", "--format", "json", "--workers", "1")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	var result ConvertResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if result.Path != filepath.Join(dir, "term.ics") {
		t.Errorf("Path = %q", result.Path)
	}
	if result.Classes != 3 || result.Events != 3 || len(result.Skipped) != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.Schedules != nil {
		t.Error("schedules should only be included with --debug")
	}
}

func TestConvert_Debug(t *testing.T) {
	stdout, stderr, code := execute(t, "", "convert", "--output-dir", t.TempDir(), "--debug", fixturePath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{
		"Classes: 3  Sessions: 3",
		"Class 1/3: ریاضی عمومی ۱ (2 sessions)",
		"Start: 2025/10/16 - 18:00",
		"End:   2025/10/16 - 19:30",
		"Class 3/3: سمینار (0 sessions)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("debug output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConvert_BareDump(t *testing.T) {
	stdout, stderr, code := execute(t, "", "convert", "--output-dir", t.TempDir(), dumpPath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{"Classes: 3", "Events: 3", "فیزیک پایه, session 2: end_unconvertible"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConvert_Verbose(t *testing.T) {
	stdout, stderr, code := execute(t, "", "convert", "--output-dir", t.TempDir(), "--verbose", fixturePath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Metrics:") || !strings.Contains(stdout, "events.written:") {
		t.Errorf("verbose output missing metrics:\n%s", stdout)
	}
	if !strings.Contains(stdout, "convert.workers: 4") {
		t.Errorf("verbose output missing worker gauge:\n%s", stdout)
	}
	if !strings.Contains(stderr, `"level":"DEBUG"`) {
		t.Errorf("verbose run should log at DEBUG:\n%s", stderr)
	}
}

func TestConvert_Filter(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, code := execute(t, "", "convert", "--output-dir", dir, "--class", "ریاضی", "--range", "مهر ۱۴۰۴", fixturePath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{
		"Classes: 1",
		"Events: 2",
		"Filter: From: 1404/07/01 | To: 1404/07/30 | Classes: ریاضی (1 sessions left out)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid format", []string{"convert", "--format", "xml", fixturePath}, "invalid format"},
		{"zero workers", []string{"convert", "--workers", "0", fixturePath}, "--workers"},
		{"missing input", []string{"convert", "--output-dir", "", "missing.html"}, "missing.html"},
		{"invalid range", []string{"convert", "--range", "soon", fixturePath}, "invalid --range"},
		{"unknown log level", []string{"--log-level", "loud", "convert", fixturePath}, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, "", tt.args...)
			if code != ExitError {
				t.Errorf("exit code = %d, want %d", code, ExitError)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestConvert_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := execute(t, "", "convert", "--output-dir", filepath.Join(blocker, "out"), fixturePath)
	if code != ExitError {
		t.Errorf("exit code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConvert_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "output_dir: " + filepath.Join(dir, "calendars") + "\noutput_file: from-config.ics\nproduct_id: Test Portal\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := execute(t, "", "--config", cfgPath, "convert", fixturePath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "calendars", "from-config.ics"))
	if err != nil {
		t.Fatalf("calendar not written to configured path: %v", err)
	}
	if !strings.Contains(string(data), "PRODID:-//Test Portal//FA\r\n") {
		t.Error("configured product id not used")
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     []string
	}{
		{
			name:     "date with time",
			args:     []string{"date", "پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰"},
			wantCode: ExitSuccess,
			want:     []string{"year=1404 month=7 day=24 time=18:00", "Gregorian date: 2025/10/16 - 18:00"},
		},
		{
			name:     "leap year esfand",
			args:     []string{"date", "۳۰ اسفند ۱۴۰۳"},
			wantCode: ExitSuccess,
			want:     []string{"time=-", "Gregorian date: 2025/03/20"},
		},
		{
			name:     "malformed time keeps the date",
			args:     []string{"date", "۲۴ مهر ۱۴۰۴ - ۲۵:۷۰"},
			wantCode: ExitSuccess,
			want:     []string{"Gregorian date: 2025/10/16", "Warning:"},
		},
		{
			name:     "invalid day",
			args:     []string{"date", "۳۱ اسفند ۱۴۰۴"},
			wantCode: ExitError,
		},
		{
			name:     "no date",
			args:     []string{"date", "hello"},
			wantCode: ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, "", tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	stdout, _, code := execute(t, "", "date", "--format", "json", "۲۴", "مهر", "۱۴۰۴", "-", "۱۸:۰۰")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	var result DateResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Gregorian == nil || result.Gregorian.FullDate != "2025-10-16 18:00" {
		t.Errorf("gregorian = %+v", result.Gregorian)
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	if _, stderr, code := execute(t, "", "convert", "--output-dir", dir, fixturePath); code != ExitSuccess {
		t.Fatalf("convert failed: %s", stderr)
	}
	path := filepath.Join(dir, "class_schedule.ics")

	stdout, stderr, code := execute(t, "", "inspect", "--sort", "summary", path)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Total: 3 events") {
		t.Errorf("inspect output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "UID: ریاضی عمومی ۱_1_20251005T140000") {
		t.Errorf("UID missing from inspect output:\n%s", stdout)
	}

	if _, _, code := execute(t, "", "inspect", "--sort", "nope", path); code != ExitError {
		t.Error("invalid sort order should fail")
	}
	if _, _, code := execute(t, "", "inspect", filepath.Join(dir, "missing.ics")); code != ExitError {
		t.Error("missing file should fail")
	}
}
