package config

import (
	"testing"

	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlayerVolume), ShouldEqual, 50)
			So(viper.GetString(key.PlayerBinary), ShouldEqual, "mpv")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.seek_step")
			So(result, ShouldEqual, "player_seek_step")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the volume field", t, func() {
		field := Default[key.PlayerVolume]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "REELPLAY_PLAYER_VOLUME")
		})

		Convey("typeName should report int", func() {
			So(field.typeName(), ShouldEqual, "int")
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PlayerVolume)
		})
	})
}
