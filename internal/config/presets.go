package config

import (
	"sort"

	"github.com/san-kum/springlab/internal/spring"
)

var Presets = map[string]map[string]*Config{
	SceneSingle: {
		"intro": {
			Scene: SceneSingle, Mode: ModeForce, EquilibriumLength: 1.5, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(100, 1000, 200),
			AppliedForceRange:   spring.NewRange(-100, 100, 0),
		},
		"lab": {
			Scene: SceneSingle, Mode: ModeForce, EquilibriumLength: 1.5, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(100, 1000, 200),
			AppliedForceRange:   spring.NewRange(-10, 10, 0),
		},
		"energy": {
			Scene: SceneSingle, Mode: ModeDisplacement, EquilibriumLength: 1.5, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(100, 400, 200),
			DisplacementRange:   spring.NewRange(-1, 1, 0),
		},
	},
	SceneSeries: {
		"default": {
			Scene: SceneSeries, Mode: ModeForce, EquilibriumLength: 0.75, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(200, 600, 200),
			AppliedForceRange:   spring.NewRange(-100, 100, 0),
		},
		"stiff": {
			Scene: SceneSeries, Mode: ModeForce, EquilibriumLength: 0.75, AppliedForceDelta: 5,
			SpringConstantRange: spring.NewRange(400, 1000, 600),
			AppliedForceRange:   spring.NewRange(-200, 200, 0),
		},
	},
	SceneParallel: {
		"default": {
			Scene: SceneParallel, Mode: ModeForce, EquilibriumLength: 1.5, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(200, 600, 200),
			AppliedForceRange:   spring.NewRange(-100, 100, 0),
		},
		"soft": {
			Scene: SceneParallel, Mode: ModeForce, EquilibriumLength: 1.5, AppliedForceDelta: 1,
			SpringConstantRange: spring.NewRange(50, 200, 100),
			AppliedForceRange:   spring.NewRange(-50, 50, 0),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPreset names the preset a scene starts from when none is given.
func DefaultPreset(scene string) string {
	if scene == SceneSingle {
		return "intro"
	}
	return "default"
}
