package models

import (
	"encoding/json"
	"testing"
)

func TestAppEntryDefaults(t *testing.T) {
	app := &AppEntry{}
	if got := app.DisplayName(); got != "Unknown" {
		t.Errorf("DisplayName() = %q, want Unknown", got)
	}
	if got := app.EffectiveMatchType(); got != MatchFixed {
		t.Errorf("EffectiveMatchType() = %q, want fixed", got)
	}
	if got := app.EffectiveInstallPathMatchType(); got != InstallPathFixed {
		t.Errorf("EffectiveInstallPathMatchType() = %q, want fixed", got)
	}

	app.Name = "My App"
	if got := app.DisplayName(); got != "My App" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestAppEntryUnknownFieldsSurviveRoundTrip(t *testing.T) {
	in := `{"name":"a","repo":"o/r","tag":"v1","install_path":"a.zip","custom_field":{"nested":true}}`

	var app AppEntry
	if err := json.Unmarshal([]byte(in), &app); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	app.Tag = "v2"

	out, err := json.Marshal(&app)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["tag"]) != `"v2"` {
		t.Errorf("tag = %s, want v2", raw["tag"])
	}
	if string(raw["custom_field"]) != `{"nested":true}` {
		t.Errorf("custom_field = %s", raw["custom_field"])
	}
}

func TestTrashConfigDirNeverMarshals(t *testing.T) {
	tc := TrashConfig{TrashPath: ".trash", AppendTag: true, Dir: "/resolved/abs/.trash"}
	out, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatal(err)
	}
	for k := range raw {
		if k != "trash_path" && k != "append_tag" && k != "append_date" {
			t.Errorf("unexpected persisted key %q", k)
		}
	}
}
