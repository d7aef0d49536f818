package script

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step is one command of a startup script.
type Step struct {
	Cmd  string   `yaml:"cmd"`
	Args []string `yaml:"args,omitempty"`
	// As names the result, e.g. a handle, for later $references.
	As string `yaml:"as,omitempty"`
}

// Startup is a parsed startup script.
type Startup struct {
	Commands []Step `yaml:"commands"`
}

// ParseStartup decodes a YAML startup script. Unknown fields and unknown
// commands are rejected before anything runs.
func ParseStartup(data []byte) (*Startup, error) {
	var st Startup
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrScript, err)
	}
	for i, c := range st.Commands {
		if _, ok := commands[c.Cmd]; !ok {
			return nil, fmt.Errorf("%w: command %d: unknown command %q", ErrScript, i+1, c.Cmd)
		}
	}
	return &st, nil
}

// LoadStartup reads and parses a startup script file.
func LoadStartup(path string) (*Startup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	st, err := ParseStartup(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// Run executes the commands in order. An argument that is exactly $name is
// replaced by the variable; anything else is passed through untouched, so
// bound code keeps its references for later.
func (st *Startup) Run(b *Bridge) error {
	for i, c := range st.Commands {
		args := make([]string, len(c.Args))
		for j, a := range c.Args {
			args[j] = a
			if name, ok := strings.CutPrefix(a, "$"); ok && isName(name) {
				v, found := b.Var(name)
				if !found {
					return fmt.Errorf("%w: command %d (%s): unknown variable %s", ErrScript, i+1, c.Cmd, a)
				}
				args[j] = v
			}
		}
		res, err := b.Exec(c.Cmd, args...)
		if err != nil {
			return fmt.Errorf("%w: command %d: %w", ErrScript, i+1, err)
		}
		if c.As != "" {
			b.SetVar(c.As, res)
		}
	}
	return nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
