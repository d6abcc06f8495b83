package config

import (
	"errors"
	"io/fs"
	"reflect"

	"github.com/spf13/viper"
)

// setDefaults registers every leaf of cfg under its mapstructure key so that
// AutomaticEnv can resolve keys that never appear in the config file.
func setDefaults(v *viper.Viper, cfg Config) {
	walk(v, "", reflect.ValueOf(cfg))
}

func walk(v *viper.Viper, prefix string, val reflect.Value) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			walk(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
