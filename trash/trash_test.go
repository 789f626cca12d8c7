package trash

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestSplitArchiveExt(t *testing.T) {
	tests := []struct {
		name     string
		wantStem string
		wantExt  string
	}{
		{name: "app.zip", wantStem: "app", wantExt: ".zip"},
		{name: "app.tar.gz", wantStem: "app", wantExt: ".tar.gz"},
		{name: "app.tar.xz", wantStem: "app", wantExt: ".tar.xz"},
		{name: "app", wantStem: "app", wantExt: ""},
		{name: "app.v2.zip", wantStem: "app.v2", wantExt: ".zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := splitArchiveExt(tt.name)
			if stem != tt.wantStem || ext != tt.wantExt {
				t.Errorf("splitArchiveExt(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.wantStem, tt.wantExt)
			}
		})
	}
}

func TestRetireNaming(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		oldTag     string
		appendTag  bool
		appendDate bool
		want       string
	}{
		{
			name: "plain stem",
			file: "app.zip",
			want: "app.zip",
		},
		{
			name:      "tag suffix",
			file:      "app.zip",
			oldTag:    "v1.0",
			appendTag: true,
			want:      "app_v1.0.zip",
		},
		{
			name:      "tag with slash is sanitized",
			file:      "app.zip",
			oldTag:    "release/v1.0",
			appendTag: true,
			want:      "app_release_v1.0.zip",
		},
		{
			name:       "compound extension stays together",
			file:       "app.tar.gz",
			oldTag:     "v1.0",
			appendTag:  true,
			appendDate: true,
			want:       "app_v1.0_20240101_120000.tar.gz",
		},
		{
			name:       "date only",
			file:       "app.zip",
			appendDate: true,
			want:       "app_20240101_120000.zip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tt.file)
			writeFile(t, src)

			m := &Manager{Dir: t.TempDir(), AppendTag: tt.appendTag, AppendDate: tt.appendDate, Now: fixedClock}
			dest, err := m.Retire(context.Background(), src, tt.oldTag)
			if err != nil {
				t.Fatalf("Retire() error = %v", err)
			}
			if got := filepath.Base(dest); got != tt.want {
				t.Errorf("Retire() = %q, want %q", got, tt.want)
			}
			if _, err := os.Stat(src); !os.IsNotExist(err) {
				t.Errorf("source file still present after Retire()")
			}
			if _, err := os.Stat(dest); err != nil {
				t.Errorf("destination missing after Retire(): %v", err)
			}
		})
	}
}

func TestRetireNeverOverwrites(t *testing.T) {
	srcDir := t.TempDir()
	m := &Manager{Dir: t.TempDir(), AppendTag: true, Now: fixedClock}

	want := []string{"app_v1.0.zip", "app_v1.0_1.zip", "app_v1.0_2.zip", "app_v1.0_3.zip"}
	var got []string
	for i := 0; i < len(want); i++ {
		src := filepath.Join(srcDir, "app.zip")
		writeFile(t, src)
		dest, err := m.Retire(context.Background(), src, "v1.0")
		if err != nil {
			t.Fatalf("Retire() #%d error = %v", i, err)
		}
		got = append(got, filepath.Base(dest))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Retire() #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRetireMissingSource(t *testing.T) {
	m := &Manager{Dir: t.TempDir()}
	if _, err := m.Retire(context.Background(), filepath.Join(t.TempDir(), "gone.zip"), "v1"); err == nil {
		t.Errorf("Retire() expected error for missing source")
	}
}
