// Package inifile wraps an INI settings file behind the section-scoped typed
// accessors the sensor descriptors load themselves from. Missing sections or
// keys are not errors; every accessor takes the value to use when the key is
// absent. Malformed values are errors and are returned to the caller.
package inifile

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// File is a parsed INI settings source.
type File struct {
	f *ini.File
}

// Load parses the INI file at path.
func Load(path string) (*File, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings file %s: %w", path, err)
	}
	return &File{f: f}, nil
}

// LoadBytes parses INI settings from an in-memory buffer.
func LoadBytes(data []byte) (*File, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return &File{f: f}, nil
}

// HasSection reports whether the named section exists.
func (f *File) HasSection(section string) bool {
	_, err := f.f.GetSection(section)
	return err == nil
}

func (f *File) key(section, name string) *ini.Key {
	sec, err := f.f.GetSection(section)
	if err != nil {
		return nil
	}
	if !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

// GetString returns the value of section/name, or def when absent.
func (f *File) GetString(section, name, def string) string {
	k := f.key(section, name)
	if k == nil {
		return def
	}
	return k.String()
}

// GetUInt returns the value of section/name as an unsigned integer, or def when
// absent. A present but non-numeric value is an error.
func (f *File) GetUInt(section, name string, def uint32) (uint32, error) {
	k := f.key(section, name)
	if k == nil {
		return def, nil
	}
	v, err := k.Uint()
	if err != nil {
		return def, fmt.Errorf("[%s] %s: %w", section, name, err)
	}
	return uint32(v), nil
}

// GetFloat returns the value of section/name as a float, or def when absent.
func (f *File) GetFloat(section, name string, def float64) (float64, error) {
	k := f.key(section, name)
	if k == nil {
		return def, nil
	}
	v, err := k.Float64()
	if err != nil {
		return def, fmt.Errorf("[%s] %s: %w", section, name, err)
	}
	return v, nil
}

// GetBool returns the value of section/name as a boolean, or def when absent.
// Accepts the usual spellings (true/false, 1/0, on/off, yes/no).
func (f *File) GetBool(section, name string, def bool) (bool, error) {
	k := f.key(section, name)
	if k == nil {
		return def, nil
	}
	v, err := k.Bool()
	if err != nil {
		return def, fmt.Errorf("[%s] %s: %w", section, name, err)
	}
	return v, nil
}
