package mpv

import (
	"time"

	"github.com/reelplay/reelplay/key"
	"github.com/spf13/viper"
)

// OptionsFromConfig reads the player.* settings.
func OptionsFromConfig() Options {
	return Options{
		Binary:        viper.GetString(key.PlayerBinary),
		ExtraArgs:     viper.GetStringSlice(key.PlayerExtraArgs),
		SocketTimeout: time.Duration(viper.GetInt(key.PlayerSocketTimeout)) * time.Millisecond,
	}
}
