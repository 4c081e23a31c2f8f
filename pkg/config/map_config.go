package config

// MapConfig serves keys from a fixed map. Used in tests.
type MapConfig struct {
	values map[string]string
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{values: make(map[string]string, len(entries))}
	for key, val := range entries {
		c.values[key] = val
	}

	return c
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) GetKey(key string) string {
	return c.values[key]
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	return withDefault(c.GetKey(key), defaultValue)
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) (int, error) {
	return intWithDefault(key, c.GetKey(key), defaultValue)
}
