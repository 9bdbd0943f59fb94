package entities

import (
	"errors"
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"campus-challenge.backend/pkg/clock"
)

// ConfigKeyDeadline holds the registration cutoff instant
const ConfigKeyDeadline = "DEADLINE"

// ConfigType is the declared type of a config row
type ConfigType string

const (
	ConfigTypeStr      ConfigType = "str"
	ConfigTypeInt      ConfigType = "int"
	ConfigTypeDatetime ConfigType = "datetime"
)

var ErrConfigTypeMismatch = errors.New("config value does not match its declared type")

// ParseConfigType validates a declared type name. An empty name means str.
func ParseConfigType(s string) (ConfigType, bool) {
	switch ConfigType(s) {
	case "", ConfigTypeStr:
		return ConfigTypeStr, true
	case ConfigTypeInt:
		return ConfigTypeInt, true
	case ConfigTypeDatetime:
		return ConfigTypeDatetime, true
	}
	return "", false
}

// ConfigValue is a config value as stored (always text) tagged with the
// type it should be read as.
type ConfigValue struct {
	Type ConfigType
	Raw  string
}

// Int reads the value as an integer
func (v ConfigValue) Int() (int64, error) {
	if v.Type != ConfigTypeInt {
		return 0, ErrConfigTypeMismatch
	}
	return strconv.ParseInt(v.Raw, 10, 64)
}

// Time reads the value as an instant; zone-less values are taken in loc
func (v ConfigValue) Time(loc *time.Location) (time.Time, error) {
	if v.Type != ConfigTypeDatetime {
		return time.Time{}, ErrConfigTypeMismatch
	}
	return clock.Parse(v.Raw, loc)
}

// Interpret returns the typed value for API output: int64 for int,
// a reformatted timestamp for datetime, the raw text otherwise or when
// conversion fails.
func (v ConfigValue) Interpret(loc *time.Location) interface{} {
	switch v.Type {
	case ConfigTypeInt:
		if n, err := v.Int(); err == nil {
			return n
		}
	case ConfigTypeDatetime:
		if t, err := v.Time(loc); err == nil {
			return t.In(loc).Format(clock.DisplayLayout)
		}
	}
	return v.Raw
}

// Validate checks that Raw converts to the declared type
func (v ConfigValue) Validate(loc *time.Location) error {
	switch v.Type {
	case ConfigTypeStr:
		return nil
	case ConfigTypeInt:
		if _, err := v.Int(); err != nil {
			return ErrConfigTypeMismatch
		}
		return nil
	case ConfigTypeDatetime:
		if _, err := v.Time(loc); err != nil {
			return ErrConfigTypeMismatch
		}
		return nil
	}
	return ErrConfigTypeMismatch
}

// Config represents a typed administrative setting
type Config struct {
	ID          uint
	Key         string
	Value       ConfigValue
	Description null.String
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
