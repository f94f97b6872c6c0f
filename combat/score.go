package combat

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Enemy kinds used for scoring and prefab lookup.
const (
	KindGrounded   = "grounded"
	KindPropelling = "propelling"
	KindZombie     = "zombie"
)

// ScoreRules awards points for a kill.
type ScoreRules interface {
	Points(kind string, weapon WeaponKind) int
}

// TableScore is a fixed per-kind points table.
type TableScore struct {
	Table   map[string]int
	Default int
}

// DefaultScore returns the stock points table.
func DefaultScore() TableScore {
	return TableScore{
		Table: map[string]int{
			KindGrounded:   100,
			KindPropelling: 200,
			KindZombie:     50,
		},
	}
}

func (t TableScore) Points(kind string, _ WeaponKind) int {
	if p, ok := t.Table[kind]; ok {
		return p
	}
	return t.Default
}

const scoreDispatchScript = `
__result = points(__kind, __weapon)
`

// ScriptScore evaluates a tengo script defining points(kind, weapon). Any
// script failure falls back to Fallback.
type ScriptScore struct {
	Fallback ScoreRules
	Logger   *slog.Logger

	mu       sync.Mutex
	compiled *tengo.Compiled
}

// NewScriptScore compiles src. The script must define a points function.
func NewScriptScore(src []byte, fallback ScoreRules) (*ScriptScore, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+scoreDispatchScript)...))
	_ = script.Add("__kind", "")
	_ = script.Add("__weapon", "")
	_ = script.Add("__result", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("combat: compile score script: %w", err)
	}
	return &ScriptScore{Fallback: fallback, compiled: compiled}, nil
}

func (s *ScriptScore) Points(kind string, weapon WeaponKind) int {
	p, err := s.eval(kind, weapon)
	if err == nil {
		return p
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("score: script failed, using table", "kind", kind, "weapon", weapon.String(), "err", err)
	if s.Fallback == nil {
		return 0
	}
	return s.Fallback.Points(kind, weapon)
}

func (s *ScriptScore) eval(kind string, weapon WeaponKind) (int, error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("nil score script")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("__kind", kind); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("__weapon", weapon.String()); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	v := s.compiled.Get("__result")
	if v.ValueType() != "int" {
		return 0, fmt.Errorf("points returned %s", v.ValueType())
	}
	return v.Int(), nil
}
