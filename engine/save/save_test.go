package save

import (
	"testing"

	"github.com/nathoo/twistrand/engine"
)

func TestCaptureRestore_RoundTrip(t *testing.T) {
	e := engine.New(42)
	for i := 0; i < 25; i++ {
		e.RandInt(0, 100)
	}

	st := Capture(e)
	if st.Seed != 42 || st.Count != 25 {
		t.Fatalf("captured (%d, %d), want (42, 25)", st.Seed, st.Count)
	}

	restored := Restore(st)
	for i := 0; i < 10; i++ {
		a := e.RandInt(0, 1000)
		b := restored.RandInt(0, 1000)
		if a != b {
			t.Fatalf("draw %d diverged after restore: %d vs %d", i, a, b)
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	sd := &SessionData{
		Version: "1",
		Active:  "loot",
		Engines: map[string]EngineState{
			"main": {Seed: 42, Count: 7},
			"loot": {Seed: -9, Count: 0},
		},
	}

	data, err := Save(sd)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Active != "loot" {
		t.Errorf("active: got %q, want %q", loaded.Active, "loot")
	}
	if got := loaded.Engines["main"]; got != (EngineState{Seed: 42, Count: 7}) {
		t.Errorf("main engine: got %+v", got)
	}
	if got := loaded.Engines["loot"]; got != (EngineState{Seed: -9, Count: 0}) {
		t.Errorf("loot engine: got %+v", got)
	}
}

func TestLoad_NilMapGuard(t *testing.T) {
	loaded, err := Load([]byte(`{"version":"1","active":"main"}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Engines == nil {
		t.Fatal("Engines map should never be nil after load")
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
