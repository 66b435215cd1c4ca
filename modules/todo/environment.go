package todo

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Environment selects which store file is opened.
type Environment int

const (
	EnvProduction Environment = iota
	EnvTest
)

// ParseEnvironment maps a config or flag value to an Environment.
func ParseEnvironment(raw string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	default:
		return EnvProduction, fmt.Errorf("unknown environment %q (expected prod|test)", raw)
	}
}

// String returns the short environment name.
func (e Environment) String() string {
	switch e {
	case EnvTest:
		return "test"
	default:
		return "prod"
	}
}

// fileName is distinct per environment so test runs never touch production data.
func (e Environment) fileName() string {
	switch e {
	case EnvTest:
		return "todos_test.db"
	default:
		return "todos.db"
	}
}

// Location returns the SQLite file path for this environment under dir.
func (e Environment) Location(dir string) string {
	if dir == "" {
		return e.fileName()
	}
	return filepath.Join(dir, e.fileName())
}
