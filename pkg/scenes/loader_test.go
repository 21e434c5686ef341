package scenes

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/gonewx/gridduel/pkg/embedded"
)

func initTestData(t *testing.T) {
	t.Helper()
	embedded.Init(fstest.MapFS{
		"data/effects.yaml": {Data: []byte("guard:\n  durationMs: 250\n")},
		"data/scripts/mini.yaml": {Data: []byte(`name: mini
units:
  - { id: knight, row: 2, col: 1 }
steps:
  - { kind: guard, source: knight }
`)},
	})
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestLoadScriptEmbedded(t *testing.T) {
	initTestData(t)

	script, err := LoadScript("mini")
	if err != nil {
		t.Fatalf("LoadScript(mini) error = %v", err)
	}
	if script.Name != "mini" || len(script.Steps) != 1 {
		t.Errorf("script = %+v", script)
	}

	if _, err := LoadScript("missing"); err == nil {
		t.Error("expected error for missing embedded script")
	}
}

func TestLoadScriptFromDisk(t *testing.T) {
	script, err := LoadScript(demoScriptPath)
	if err != nil {
		t.Fatalf("LoadScript(%s) error = %v", demoScriptPath, err)
	}
	if script.Name != "demo" {
		t.Errorf("Name = %q, want demo", script.Name)
	}
}

func TestLoadEffects(t *testing.T) {
	initTestData(t)

	cfg, err := LoadEffects("")
	if err != nil {
		t.Fatalf("LoadEffects() error = %v", err)
	}
	if cfg.Guard.DurationMs != 250 {
		t.Errorf("Guard.DurationMs = %d, want 250 from embedded file", cfg.Guard.DurationMs)
	}

	cfg, err = LoadEffects("../../data/effects.yaml")
	if err != nil {
		t.Fatalf("LoadEffects(file) error = %v", err)
	}
	if cfg.Guard.DurationMs != 1000 {
		t.Errorf("Guard.DurationMs = %d, want 1000 from data/effects.yaml", cfg.Guard.DurationMs)
	}
}

func TestLoadEffectsWithoutEmbedded(t *testing.T) {
	embedded.Init(nil)

	cfg, err := LoadEffects("")
	if err != nil {
		t.Fatalf("LoadEffects() error = %v", err)
	}
	if cfg.Attack.TravelMs != 300 {
		t.Errorf("expected built-in defaults, got attack travel %d", cfg.Attack.TravelMs)
	}
}

func TestListScripts(t *testing.T) {
	initTestData(t)

	if got := ListScripts(); !reflect.DeepEqual(got, []string{"mini"}) {
		t.Errorf("ListScripts() = %v, want [mini]", got)
	}
}
