package cmd

import (
	"testing"

	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSourceArg(t *testing.T) {
	Convey("Given the positional arguments", t, func() {
		Convey("No argument means no source", func() {
			source, err := sourceArg(nil)
			So(err, ShouldBeNil)
			So(source.IsAbsent(), ShouldBeTrue)
		})

		Convey("A path becomes a named source", func() {
			source, err := sourceArg([]string{" /media/clip.mp4 "})
			So(err, ShouldBeNil)
			So(source.MustGet().Locator, ShouldEqual, "/media/clip.mp4")
			So(source.MustGet().Name, ShouldEqual, "clip.mp4")
		})

		Convey("A blank argument is rejected", func() {
			_, err := sourceArg([]string{"   "})
			So(err, ShouldEqual, errNoSource)
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Given config fields of each type", t, func() {
		Convey("Integers are parsed", func() {
			v, err := parseValue(config.Default[key.PlayerSeekStep], []string{"10"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 10)

			_, err = parseValue(config.Default[key.PlayerSeekStep], []string{"ten"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are parsed", func() {
			v, err := parseValue(config.Default[key.HistorySave], []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			_, err = parseValue(config.Default[key.HistorySave], []string{"nope"})
			So(err, ShouldNotBeNil)
		})

		Convey("Lists keep every word", func() {
			v, err := parseValue(config.Default[key.PlayerExtraArgs], []string{"--fs", "--mute=yes"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"--fs", "--mute=yes"})
		})

		Convey("Strings take the first word", func() {
			v, err := parseValue(config.Default[key.PlayerBinary], []string{"/usr/local/bin/mpv"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "/usr/local/bin/mpv")
		})

		Convey("A missing value is an error", func() {
			_, err := parseValue(config.Default[key.PlayerBinary], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("A misspelled key suggests the closest one", t, func() {
		err := errUnknownKey("player.volme")
		So(err.Error(), ShouldContainSubstring, key.PlayerVolume)
	})
}

func TestConfigHelpers(t *testing.T) {
	Convey("Given a command with --key and --value flags", t, func() {
		cmd := &cobra.Command{}
		cmd.Flags().String("key", "", "")
		cmd.Flags().StringSlice("value", nil, "")

		Convey("Arguments win over flags", func() {
			So(cmd.Flags().Set("key", key.PlayerBinary), ShouldBeNil)
			k, err := keyFrom(cmd, []string{key.PlayerSeekStep, "10"})
			So(err, ShouldBeNil)
			So(k, ShouldEqual, key.PlayerSeekStep)

			value, err := valueFrom(cmd, []string{key.PlayerSeekStep, "10"})
			So(err, ShouldBeNil)
			So(value, ShouldResemble, []string{"10"})
		})

		Convey("Flags fill in missing arguments", func() {
			So(cmd.Flags().Set("key", key.PlayerBinary), ShouldBeNil)
			So(cmd.Flags().Set("value", "/opt/mpv"), ShouldBeNil)

			k, err := keyFrom(cmd, nil)
			So(err, ShouldBeNil)
			So(k, ShouldEqual, key.PlayerBinary)

			value, err := valueFrom(cmd, nil)
			So(err, ShouldBeNil)
			So(value, ShouldResemble, []string{"/opt/mpv"})
		})

		Convey("Nothing given is an error", func() {
			_, err := keyFrom(cmd, nil)
			So(err, ShouldEqual, errMissingKey)
			_, err = valueFrom(cmd, []string{key.PlayerBinary})
			So(err, ShouldEqual, errMissingValue)
		})
	})

	Convey("Fields are selected by key and sorted", t, func() {
		fields, err := selectFields([]string{key.PlayerVolume, key.HistorySave})
		So(err, ShouldBeNil)
		So(fields, ShouldHaveLength, 2)
		So(fields[0].Key, ShouldEqual, key.HistorySave)
		So(fields[1].Key, ShouldEqual, key.PlayerVolume)

		all, err := selectFields(nil)
		So(err, ShouldBeNil)
		So(all, ShouldHaveLength, len(config.Default))

		_, err = selectFields([]string{"player.volme"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, key.PlayerVolume)
	})

	Convey("Restoring defaults resets only what is named", t, func() {
		viper.Set(key.PlayerSeekStep, 42)
		viper.Set(key.PlayerBinary, "/opt/mpv")

		fields, err := restoreDefaults(key.PlayerSeekStep)
		So(err, ShouldBeNil)
		So(fields, ShouldHaveLength, 1)
		So(viper.Get(key.PlayerSeekStep), ShouldEqual, config.Default[key.PlayerSeekStep].Value)
		So(viper.GetString(key.PlayerBinary), ShouldEqual, "/opt/mpv")

		fields, err = restoreDefaults()
		So(err, ShouldBeNil)
		So(fields, ShouldHaveLength, len(config.Default))
		So(viper.Get(key.PlayerBinary), ShouldEqual, config.Default[key.PlayerBinary].Value)

		_, err = restoreDefaults("nope")
		So(err, ShouldNotBeNil)
	})
}
