package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the process environment. When DotenvPath is
// set, Load first adds the entries of that file to the environment. Values
// already present in the environment win over the file.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	if err := gotenv.Load(c.DotenvPath); err != nil {
		return fmt.Errorf("loading %s: %w", c.DotenvPath, err)
	}

	return nil
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	return withDefault(c.GetKey(key), defaultValue)
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) (int, error) {
	return intWithDefault(key, c.GetKey(key), defaultValue)
}

func withDefault(val, defaultValue string) string {
	if val == "" {
		return defaultValue
	}

	return val
}

func intWithDefault(key, val string, defaultValue int) (int, error) {
	if val == "" {
		return defaultValue, nil
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("config key %s isn't an int (%q): %w", key, val, err)
	}

	return intVal, nil
}
