// Package config reads command-line flags and GKM_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/soar/GamepadKeyMouse/internal/inject"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// EnvPrefix prefixes every environment override, GKM_MAX_SPEED=30 for
// --max-speed=30.
const EnvPrefix = "GKM"

// maxSpeedLimit bounds --max-speed in pixels per frame.
const maxSpeedLimit = 1000

// Config is the validated runtime configuration.
type Config struct {
	Deadzone    int32
	MaxSpeed    float64
	ScrollSpeed float64

	FrameDelay       time.Duration
	NavDelay         time.Duration
	NavThreshold     float64
	TriggerThreshold int16

	Diagonal osk.DiagonalPolicy
	Reopen   osk.ReopenPolicy

	Backend    string
	UinputPath string

	ViewAddr     string
	TerminalView bool
	Tray         bool
	Sound        bool

	LogLevel zapcore.Level
}

// NewFlagSet returns the flag set with every option and its default.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Int32("deadzone", 8192, "stick deadzone in raw units (0-32766)")
	fs.Float64("max-speed", 20, "pointer speed in pixels per frame at full deflection")
	fs.Float64("scroll-speed", 0.25, "scroll ticks per frame at full deflection")
	fs.Duration("frame-delay", 16*time.Millisecond, "delay between input frames")
	fs.Duration("nav-delay", 80*time.Millisecond, "minimum time between keyboard cursor steps")
	fs.Float64("nav-threshold", 0.3, "stick deflection (0-1) that counts as a cursor step")
	fs.Int16("trigger-threshold", 0, "trigger value above which a keyboard cursor is active")
	fs.String("diagonal", osk.DiagonalSimultaneous.String(), "blocked diagonal fallback: simultaneous or horizontal-first")
	fs.String("reopen", osk.ReopenPreserve.String(), "cursor position after the keyboard closes: preserve or reset")
	fs.String("backend", inject.BackendUinput, "injection backend: uinput, xtest or dryrun")
	fs.String("uinput-path", "/dev/uinput", "uinput device node")
	fs.String("view-addr", "localhost:8080", "listen address of the browser keyboard view, empty to disable")
	fs.Bool("terminal-view", false, "draw the keyboard in this terminal")
	fs.Bool("tray", false, "show a tray icon")
	fs.Bool("sound", false, "play a click on every key press")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	return fs
}

// Load parses args and the environment. It returns pflag.ErrHelp when help
// was requested.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("gamepad-keymouse")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Deadzone:     v.GetInt32("deadzone"),
		MaxSpeed:     v.GetFloat64("max-speed"),
		ScrollSpeed:  v.GetFloat64("scroll-speed"),
		FrameDelay:   v.GetDuration("frame-delay"),
		NavDelay:     v.GetDuration("nav-delay"),
		NavThreshold: v.GetFloat64("nav-threshold"),
		Backend:      v.GetString("backend"),
		UinputPath:   v.GetString("uinput-path"),
		ViewAddr:     v.GetString("view-addr"),
		TerminalView: v.GetBool("terminal-view"),
		Tray:         v.GetBool("tray"),
		Sound:        v.GetBool("sound"),
	}

	thr := v.GetInt("trigger-threshold")
	if thr < 0 || thr > 32766 {
		return nil, errors.Errorf("trigger-threshold %d out of range [0, 32766]", thr)
	}
	cfg.TriggerThreshold = int16(thr)

	var err error
	if cfg.Diagonal, err = osk.ParseDiagonalPolicy(v.GetString("diagonal")); err != nil {
		return nil, err
	}
	if cfg.Reopen, err = osk.ParseReopenPolicy(v.GetString("reopen")); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(v.GetString("log-level")); err != nil {
		return nil, errors.Wrap(err, "log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	switch {
	case c.Deadzone < 0 || c.Deadzone >= 32767:
		return errors.Errorf("deadzone %d out of range [0, 32767)", c.Deadzone)
	case c.MaxSpeed < 0 || c.MaxSpeed > maxSpeedLimit:
		return errors.Errorf("max-speed %v out of range [0, %d]", c.MaxSpeed, maxSpeedLimit)
	case c.ScrollSpeed < 0:
		return errors.Errorf("scroll-speed %v is negative", c.ScrollSpeed)
	case c.NavThreshold <= 0 || c.NavThreshold >= 1:
		return errors.Errorf("nav-threshold %v out of range (0, 1)", c.NavThreshold)
	case c.FrameDelay <= 0:
		return errors.Errorf("frame-delay %v must be positive", c.FrameDelay)
	case c.NavDelay < 0:
		return errors.Errorf("nav-delay %v is negative", c.NavDelay)
	}
	switch c.Backend {
	case inject.BackendUinput, inject.BackendXTest, inject.BackendDryRun:
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
