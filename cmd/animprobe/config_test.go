package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeConfigNamed(t, "probe.yaml", content)
}

func writeConfigNamed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
model: models/fox.glb
clip: Run
joint: b_Hip_01
frames: 30
fps: 24
speed: 0.5
loop: true
max_joints: 64
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "models", "fox.glb"), cfg.Model)
	assert.Equal(t, "Run", cfg.Clip)
	assert.Equal(t, "b_Hip_01", cfg.Joint)
	assert.Equal(t, 30, cfg.Frames)
	assert.Equal(t, float32(24), cfg.FPS)
	assert.Equal(t, float32(0.5), cfg.Speed)
	assert.True(t, cfg.Loop)
	assert.Equal(t, 64, cfg.MaxJoints)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfigNamed(t, "probe.toml", `
model = "/abs/fox.glb"
clip = "Survey"
fps = 30.0
loop = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/abs/fox.glb", cfg.Model)
	assert.Equal(t, "Survey", cfg.Clip)
	assert.Equal(t, float32(30), cfg.FPS)
	assert.True(t, cfg.Loop)

	_, err = LoadConfig(writeConfigNamed(t, "bad.toml", "modle = \"fox.glb\"\n"))
	assert.Error(t, err)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "modle: fox.glb\n"))
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		flags Flags
		want  Config
	}{
		{
			name: "defaults",
			cfg:  Config{Model: "fox.glb"},
			want: Config{Model: "fox.glb", Frames: 120, FPS: 60, Speed: 1, MaxJoints: 128},
		},
		{
			name:  "flags override file",
			cfg:   Config{Model: "fox.glb", Clip: "Walk", FPS: 30, Speed: 2},
			flags: Flags{Model: "wolf.glb", Clip: "Run", FPS: 24, Loop: true},
			want:  Config{Model: "wolf.glb", Clip: "Run", Frames: 120, FPS: 24, Speed: 2, MaxJoints: 128, Loop: true},
		},
		{
			name:  "file booleans survive unset flags",
			cfg:   Config{Model: "fox.glb", Loop: true, Watch: true, Frames: 10},
			flags: Flags{},
			want:  Config{Model: "fox.glb", Loop: true, Watch: true, Frames: 10, FPS: 60, Speed: 1, MaxJoints: 128},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Resolve(tt.flags)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	assert.ErrorIs(t, cfg.Validate(), errMissingModel)

	cfg = Config{Model: "fox.glb", FPS: 0}
	assert.ErrorIs(t, cfg.Validate(), errBadFPS)

	cfg = Config{Model: "fox.glb", FPS: 60, Frames: -1}
	assert.ErrorIs(t, cfg.Validate(), errBadFrames)

	cfg = Config{Model: "fox.glb", FPS: 60, Frames: 10}
	assert.NoError(t, cfg.Validate())
}
