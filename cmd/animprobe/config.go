package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	errMissingModel = errors.New("no model given; use -model or the config file")
	errBadFPS       = errors.New("fps must be positive")
	errBadFrames    = errors.New("frames must not be negative")
)

// Config holds the probe settings read from a YAML or TOML file.
type Config struct {
	Model     string  `yaml:"model" toml:"model"`
	Clip      string  `yaml:"clip" toml:"clip"`
	Joint     string  `yaml:"joint" toml:"joint"`
	Frames    int     `yaml:"frames" toml:"frames"`
	FPS       float32 `yaml:"fps" toml:"fps"`
	Speed     float32 `yaml:"speed" toml:"speed"`
	Loop      bool    `yaml:"loop" toml:"loop"`
	Skin      int     `yaml:"skin" toml:"skin"`
	Workers   int     `yaml:"workers" toml:"workers"`
	MaxJoints int     `yaml:"max_joints" toml:"max_joints"`
	Watch     bool    `yaml:"watch" toml:"watch"`
}

// Flags are the command-line overrides. Zero values mean "not given".
type Flags struct {
	Model  string
	Clip   string
	Joint  string
	Frames int
	FPS    float32
	Speed  float32
	Loop   bool
	Watch  bool
}

// LoadConfig reads a YAML config file, or a TOML one when the extension is .toml.
// Unknown keys are rejected and an empty file is an empty config.
// A relative model path is resolved against the config file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Model != "" && !filepath.IsAbs(cfg.Model) {
		cfg.Model = filepath.Join(filepath.Dir(path), cfg.Model)
	}
	return cfg, nil
}

// Resolve applies command-line overrides, then defaults: 120 frames at 60 fps, speed 1.
func (c *Config) Resolve(flags Flags) {
	c.Model = common.Coalesce(flags.Model, c.Model)
	c.Clip = common.Coalesce(flags.Clip, c.Clip)
	c.Joint = common.Coalesce(flags.Joint, c.Joint)
	c.Frames = common.Coalesce(flags.Frames, c.Frames, 120)
	c.FPS = common.Coalesce(flags.FPS, c.FPS, 60)
	c.Speed = common.Coalesce(flags.Speed, c.Speed, 1)
	c.MaxJoints = common.Coalesce(c.MaxJoints, 128)
	c.Loop = c.Loop || flags.Loop
	c.Watch = c.Watch || flags.Watch
}

// Validate reports settings the probe cannot run with.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errMissingModel
	}
	if c.FPS <= 0 {
		return errBadFPS
	}
	if c.Frames < 0 {
		return errBadFrames
	}
	return nil
}
