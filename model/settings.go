package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Sensitivity controls how aggressively simulated alerts fire.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "Low"
	SensitivityMedium Sensitivity = "Medium"
	SensitivityHigh   Sensitivity = "High"
)

// Valid reports whether s is a known level.
func (s Sensitivity) Valid() bool {
	switch s {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return true
	}
	return false
}

// Settings is the single process-wide preferences record.
//
// Keys the application does not know about are kept in Extra so that a
// payload written by a newer client survives a read/write cycle.
type Settings struct {
	PushAlerts   bool
	SoundEffects bool
	Sensitivity  Sensitivity
	Extra        map[string]json.RawMessage
}

// DefaultSettings returns the values used for any key never saved.
func DefaultSettings() Settings {
	return Settings{
		PushAlerts:   true,
		SoundEffects: true,
		Sensitivity:  SensitivityMedium,
	}
}

const (
	keyPushAlerts   = "pushAlerts"
	keySoundEffects = "soundEffects"
	keySensitivity  = "sensitivity"
)

// MarshalJSON writes the known fields plus any preserved unknown keys.
func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		out[k] = v
	}
	out[keyPushAlerts] = s.PushAlerts
	out[keySoundEffects] = s.SoundEffects
	out[keySensitivity] = s.Sensitivity
	return json.Marshal(out)
}

// UnmarshalJSON merges the payload over DefaultSettings. Missing keys keep
// their default; unknown keys land in Extra. A known key of the wrong type
// is an error.
func (s *Settings) UnmarshalJSON(data []byte) error {
	merged, bad, err := DecodeSettings(data)
	if err != nil {
		return err
	}
	if len(bad) > 0 {
		return fmt.Errorf("settings: field %q has the wrong type", bad[0])
	}
	*s = merged
	return nil
}

// DecodeSettings is the lenient form of UnmarshalJSON used for stored
// records: a known key of the wrong type keeps its default and is reported
// in skipped instead of failing the whole record.
func DecodeSettings(data []byte) (Settings, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, nil, err
	}
	merged := DefaultSettings()
	var skipped []string
	for k, v := range raw {
		var err error
		switch k {
		case keyPushAlerts:
			err = json.Unmarshal(v, &merged.PushAlerts)
		case keySoundEffects:
			err = json.Unmarshal(v, &merged.SoundEffects)
		case keySensitivity:
			err = json.Unmarshal(v, &merged.Sensitivity)
		default:
			if merged.Extra == nil {
				merged.Extra = make(map[string]json.RawMessage)
			}
			merged.Extra[k] = v
		}
		if err != nil {
			skipped = append(skipped, k)
		}
	}
	sort.Strings(skipped)
	return merged, skipped, nil
}
