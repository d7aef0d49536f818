// Package config stores engine settings in an ini file. Keys missing from the
// file are filled with defaults and written back on load, so a fresh install
// ends up with a complete, editable engine.cfg.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/ini.v1"
)

// Default settings, in the order they are written to a new file.
var Defaults = []struct{ Key, Value string }{
	{"display_width", "320"},
	{"display_height", "240"},
	{"screen_width", "640"},
	{"screen_height", "480"},
	{"screen_zoom", "2"},
	{"fullscreen", "false"},
	{"frame", "true"},
	{"frameskip", "true"},
	{"surface_alpha", "true"},
	{"window_title", "tilewalk"},
	{"font", ""},
	{"font_size", "12"},
	{"font_skip", "0"},
	{"key_activate", "Space"},
	{"joystick", "0"},
	{"sound", "true"},
	{"fps_limit", "80"},
	{"script", "game.yaml"},
	{"save_file", "save.twk"},
}

// Config is an engine.cfg file. Keys live in the default section.
type Config struct {
	path string
	file *ini.File
}

var loadOptions = ini.LoadOptions{
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
}

// Load reads path, adds defaults for missing keys and saves the result. A
// missing file is created.
func Load(path string) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		f = ini.Empty(loadOptions)
	}
	c := &Config{path: path, file: f}
	if c.fillDefaults() {
		if err := c.Save(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Parse reads settings from memory. The result is not tied to a file and
// Save fails until SetPath is called.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	c := &Config{file: f}
	c.fillDefaults()
	return c, nil
}

func (c *Config) fillDefaults() (changed bool) {
	sec := c.file.Section(ini.DefaultSection)
	for _, d := range Defaults {
		if !sec.HasKey(d.Key) {
			sec.Key(d.Key).SetValue(d.Value)
			changed = true
		}
	}
	return changed
}

// Path returns the file the config saves to.
func (c *Config) Path() string { return c.path }

// SetPath changes the file the config saves to.
func (c *Config) SetPath(path string) { c.path = path }

// Save writes the config back to its file.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config: no file to save to")
	}
	if err := c.file.SaveTo(c.path); err != nil {
		return fmt.Errorf("config: save %s: %w", c.path, err)
	}
	return nil
}

// Value returns the raw value of key, or "" when unset.
func (c *Config) Value(key string) string {
	return c.file.Section(ini.DefaultSection).Key(key).String()
}

// Int returns key as an integer. Unparsable values yield the default.
func (c *Config) Int(key string) int {
	return c.file.Section(ini.DefaultSection).Key(key).MustInt(defaultInt(key))
}

// Bool returns key as a boolean. Accepts the forms ini understands, such as
// true, 1, yes and on.
func (c *Config) Bool(key string) bool {
	return c.file.Section(ini.DefaultSection).Key(key).MustBool(defaultBool(key))
}

// Set stores a raw value.
func (c *Config) Set(key, value string) {
	c.file.Section(ini.DefaultSection).Key(key).SetValue(value)
}

// SetInt stores an integer.
func (c *Config) SetInt(key string, v int) { c.Set(key, strconv.Itoa(v)) }

// SetBool stores a boolean.
func (c *Config) SetBool(key string, v bool) { c.Set(key, strconv.FormatBool(v)) }

// Keys returns every key in file order.
func (c *Config) Keys() []string {
	return c.file.Section(ini.DefaultSection).KeyStrings()
}

func defaultValue(key string) string {
	for _, d := range Defaults {
		if d.Key == key {
			return d.Value
		}
	}
	return ""
}

func defaultInt(key string) int {
	v, _ := strconv.Atoi(defaultValue(key))
	return v
}

func defaultBool(key string) bool {
	v, _ := strconv.ParseBool(defaultValue(key))
	return v
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
