// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Changes is signalled (non-blocking, capacity one) every time the config file is reloaded from disk.
var Changes = make(chan struct{}, 1)

// Watch enables live reloading of the config file. It is a no-op when no file was found by Setup.
func Watch() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(fsnotify.Event) {
		select {
		case Changes <- struct{}{}:
		default:
		}
	})
	viper.WatchConfig()
}
