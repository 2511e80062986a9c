package main

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/experiment"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"F=10", "k=5e2"})
	require.NoError(t, err)
	assert.Equal(t, []assignment{{"F", 10}, {"k", 500}}, got)

	_, err = parseAssignments([]string{"F"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=3"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"F=ten"})
	assert.Error(t, err)
}

func newCmd() *cobra.Command {
	var scene string
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&scene, "scene", config.SceneSingle, "")
	return cmd
}

func TestLoadConfigPreset(t *testing.T) {
	configFile, sceneName, preset = "", config.SceneSeries, ""
	cfg, err := loadConfig(newCmd())
	require.NoError(t, err)
	assert.Equal(t, config.SceneSeries, cfg.Scene)

	preset = "missing"
	defer func() { preset = "" }()
	_, err = loadConfig(newCmd())
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, config.Save(path, config.GetPreset(config.SceneParallel, "soft")))

	configFile, sceneName, preset = path, config.SceneSingle, ""
	defer func() { configFile = "" }()

	cfg, err := loadConfig(newCmd())
	require.NoError(t, err)
	assert.Equal(t, config.SceneParallel, cfg.Scene)

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("scene", config.SceneSeries))
	sceneName = config.SceneSeries
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.SceneSeries, cfg.Scene)
}

func TestQuantityNames(t *testing.T) {
	scene, err := experiment.NewRegistry().Build(config.GetPreset(config.SceneSingle, "lab"), nil)
	require.NoError(t, err)
	defer scene.Dispose()

	assert.Equal(t, []string{"k", "F", "x", "arm", "Fs", "E", "length"}, quantityNames(scene))
}
