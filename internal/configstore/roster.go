package configstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// rosterFile is the YAML layout accepted by `queuectl players load`:
//
//	courts: 2
//	players:
//	  - Ann
//	  - Bo
type rosterFile struct {
	Courts  int      `yaml:"courts"`
	Players []string `yaml:"players"`
}

// ParseRoster decodes a YAML roster. Unknown keys are rejected. A missing
// courts key yields Courts == 0, which callers treat as "keep current".
func ParseRoster(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rf rosterFile
	if err := dec.Decode(&rf); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{Players: []string{}}, nil
		}
		return Config{}, fmt.Errorf("parse roster: %w", err)
	}
	if rf.Courts < 0 {
		return Config{}, fmt.Errorf("parse roster: courts must be >= 1, got %d", rf.Courts)
	}
	cfg := Config{Players: rf.Players, Courts: rf.Courts}
	cfg.Players = cfg.Registry().Players
	return cfg, nil
}

func LoadRosterFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read roster: %w", err)
	}
	return ParseRoster(data)
}
