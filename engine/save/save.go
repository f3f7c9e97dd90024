// Package save implements JSON serialization of engine sessions. The entire
// serializable state of one engine is its (seed, count) pair: restoring is
// reseeding and replaying the consumed words.
package save

import (
	"encoding/json"

	"github.com/nathoo/twistrand/engine"
)

// EngineState is the persisted form of a single engine.
type EngineState struct {
	Seed  int32  `json:"seed"`
	Count uint32 `json:"count"`
}

// SessionData is the JSON-serializable session format: a set of named
// engines and which one is active.
type SessionData struct {
	Version string                 `json:"version"`
	Active  string                 `json:"active"`
	Engines map[string]EngineState `json:"engines"`
}

// Capture records an engine's persistable state.
func Capture(e *engine.Engine) EngineState {
	return EngineState{Seed: e.RootSeed(), Count: e.State()}
}

// Restore reconstructs an engine from its persisted state by reseeding and
// advancing. Subsequent draws match the engine the state was captured from.
func Restore(st EngineState) *engine.Engine {
	e := engine.New(st.Seed)
	e.Advance(st.Count)
	return e
}

// Save serializes session data to JSON bytes.
func Save(sd *SessionData) ([]byte, error) {
	return json.MarshalIndent(sd, "", "  ")
}

// Load deserializes JSON bytes into SessionData.
func Load(data []byte) (*SessionData, error) {
	var sd SessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	// Ensure the map is never nil after load.
	if sd.Engines == nil {
		sd.Engines = map[string]EngineState{}
	}
	return &sd, nil
}
