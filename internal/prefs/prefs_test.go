package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load first run: %v", err)
	}
	if p.Theme != defaultTheme || p.LastShelf != "" {
		t.Fatalf("first run prefs = %+v, want defaults", p)
	}

	writePrefs(t, filepath.Join(home, ".config", "stockroom", "prefs.toml"), "theme = \"Slate\"\nlast_shelf = \"backroom\"\n")
	p, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Theme != "Slate" || p.LastShelf != "backroom" {
		t.Fatalf("prefs = %+v, want Slate/backroom", p)
	}
}

func TestLoad_FileContents(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		want      Prefs
		wantError bool
	}{
		{"theme and shelf", "theme = \"Slate\"\nlast_shelf = \" pantry \"\n", Prefs{Theme: "Slate", LastShelf: "pantry"}, false},
		{"blank theme", "theme = \"\"\n", Prefs{Theme: defaultTheme}, false},
		{"shelf only", "last_shelf = \"garage\"\n", Prefs{Theme: defaultTheme, LastShelf: "garage"}, false},
		{"malformed", "not valid toml {{{\n", Prefs{Theme: defaultTheme}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			writePrefs(t, path, tc.content)

			got, err := Load(path)
			if (err != nil) != tc.wantError {
				t.Fatalf("Load error = %v, wantError %v", err, tc.wantError)
			}
			if got != tc.want {
				t.Fatalf("Load = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSave_CreatesDirsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	if err := Save(path, Prefs{Theme: "Slate", LastShelf: "backroom"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Theme != "Slate" || p.LastShelf != "backroom" {
		t.Fatalf("prefs = %+v, want Slate/backroom", p)
	}
}
