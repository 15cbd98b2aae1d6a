package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gni/internal/config"
)

func newRunCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "run"}
	addRunFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(newRunCmd(t), "pendulum")
	require.NoError(t, err)
	require.Equal(t, "pendulum", cfg.Model)
	require.Equal(t, config.DefaultMethod, cfg.Method)
	require.Equal(t, config.DefaultDt, cfg.Dt)
}

func TestBuildConfigFlagsOverridePreset(t *testing.T) {
	cmd := newRunCmd(t, "--preset", "kdk", "--dt", "0.01", "--param", "mass=2")
	cfg, err := buildConfig(cmd, "spring_chain")
	require.NoError(t, err)

	require.Equal(t, 0.01, cfg.Dt)
	require.Len(t, cfg.Recipe, 3)
	require.Equal(t, 8, cfg.Size)
	require.Equal(t, 2.0, cfg.Params["mass"])

	cmd = newRunCmd(t, "--preset", "kdk", "--method", "rk4")
	cfg, err = buildConfig(cmd, "spring_chain")
	require.NoError(t, err)
	require.Empty(t, cfg.Recipe)
	require.Equal(t, "rk4", cfg.MethodLabel())
}

func TestBuildConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: kepler\nmethod: suzuki\ndt: 0.002\n"), 0644))

	cmd := newRunCmd(t, "--config", path, "--time", "3")
	cfg, err := buildConfig(cmd, "kepler")
	require.NoError(t, err)
	require.Equal(t, "suzuki", cfg.Method)
	require.Equal(t, 0.002, cfg.Dt)
	require.Equal(t, 3.0, cfg.Duration)

	_, err = buildConfig(newRunCmd(t, "--config", path), "pendulum")
	require.Error(t, err)
}

func TestBuildConfigErrors(t *testing.T) {
	_, err := buildConfig(newRunCmd(t, "--preset", "nope"), "oscillator")
	require.Error(t, err)

	_, err = buildConfig(newRunCmd(t, "--dt", "0"), "oscillator")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = buildConfig(newRunCmd(t, "--param", "mass=heavy"), "oscillator")
	require.Error(t, err)
}

func TestComponentCaption(t *testing.T) {
	require.Equal(t, "theta (angle)", componentCaption("pendulum", 0, 2))
	require.Equal(t, "q1 vs time", componentCaption("kepler", 1, 4))
	require.Equal(t, "p0 vs time", componentCaption("kepler", 2, 4))
	require.Equal(t, "x3 vs time", componentCaption("other", 3, 4))
}
