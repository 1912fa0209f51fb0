package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// sectionTargets maps section names to the structs they populate.
func (c *Config) sectionTargets() map[string]interface{} {
	return map[string]interface{}{
		"display":   &c.Display,
		"touch":     &c.Touch,
		"refresh":   &c.Refresh,
		"server":    &c.Server,
		"weather":   &c.Weather,
		"portfolio": &c.Portfolio,
		"news":      &c.News,
		"network":   &c.Network,
	}
}

// GetKey returns the value of a "section.key" setting as a string.
func (c *Config) GetKey(key string) (string, error) {
	sec, name, err := c.reflectSection(key)
	if err != nil {
		return "", err
	}
	if !sec.HasKey(name) {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return sec.Key(name).String(), nil
}

// SetKey updates a "section.key" setting from its string form and
// revalidates the configuration.
func (c *Config) SetKey(key, value string) error {
	sec, name, err := c.reflectSection(key)
	if err != nil {
		return err
	}
	if !sec.HasKey(name) {
		return fmt.Errorf("unknown config key: %s", key)
	}
	sec.Key(name).SetValue(value)

	section := strings.SplitN(key, ".", 2)[0]
	if err := sec.MapTo(c.sectionTargets()[section]); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	c.Validate()
	return nil
}

// Keys lists every settable "section.key" name.
func (c *Config) Keys() []string {
	var keys []string
	for name, target := range c.sectionTargets() {
		file := ini.Empty()
		sec, err := file.NewSection(name)
		if err != nil {
			continue
		}
		if err := sec.ReflectFrom(target); err != nil {
			continue
		}
		for _, k := range sec.KeyStrings() {
			keys = append(keys, name+"."+k)
		}
	}
	return keys
}

// reflectSection materializes the named section as an INI section so a
// single key can be read or written generically.
func (c *Config) reflectSection(key string) (*ini.Section, string, error) {
	section, name, found := strings.Cut(key, ".")
	if !found || section == "" || name == "" {
		return nil, "", fmt.Errorf("config key must be section.key, got %q", key)
	}
	target, ok := c.sectionTargets()[section]
	if !ok {
		return nil, "", fmt.Errorf("unknown config section: %s", section)
	}
	file := ini.Empty()
	sec, err := file.NewSection(section)
	if err != nil {
		return nil, "", err
	}
	if err := sec.ReflectFrom(target); err != nil {
		return nil, "", err
	}
	return sec, name, nil
}
