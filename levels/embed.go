package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is an arena layout: a flat floor plus the entities placed on it.
type Level struct {
	Name     string   `json:"name"`
	GroundY  float64  `json:"ground_y"`
	Width    float64  `json:"width"`
	Depth    float64  `json:"depth"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity is one placement. Type is "player", "objective", "tower" or an
// enemy type name understood by the enemy builder.
type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Z     float64                `json:"z"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Prop returns a string property or def when it is missing.
func (e Entity) Prop(key, def string) string {
	if v, ok := e.Props[key].(string); ok && v != "" {
		return v
	}
	return def
}

// NumberProp returns a numeric property or def when it is missing.
func (e Entity) NumberProp(key string, def float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return def
}

// LoadLevel reads name from levels/ on disk when present, otherwise from the
// embedded set.
func LoadLevel(name string) (*Level, error) {
	if data, err := os.ReadFile(filepath.Join("levels", filepath.Base(name))); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(name)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks that the level places exactly one player.
func (l *Level) Validate() error {
	players := 0
	for _, e := range l.Entities {
		if e.Type == "player" {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("level %q: expected one player, found %d", l.Name, players)
	}
	return nil
}
