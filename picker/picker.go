// Package picker acquires the next media source from the user.
package picker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/transport"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Chooser asks the user for a source. None means the user backed out.
type Chooser interface {
	Choose() (mo.Option[transport.Source], error)
}

// Accept turns user input into a source. Blank input is rejected;
// anything else is left for the engine to judge.
func Accept(locator string) mo.Option[transport.Source] {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return mo.None[transport.Source]()
	}
	return mo.Some(transport.NewSource(locator))
}

// IsMedia reports whether path carries one of the known media extensions.
func IsMedia(path string) bool {
	return lo.Contains(constant.MediaExtensions, strings.ToLower(filepath.Ext(path)))
}

// MediaFiles lists the media files directly inside dir.
func MediaFiles(dir string) ([]string, error) {
	return filesystem.ListByExtension(expandHome(dir), constant.MediaExtensions, viper.GetBool(key.TUIShowHidden))
}

// FilterNames keeps the paths whose base name fuzzy matches query, best match first.
func FilterNames(paths []string, query string) []string {
	if query == "" {
		return paths
	}

	byName := make(map[string]string, len(paths))
	names := lo.Map(paths, func(p string, _ int) string {
		name := filepath.Base(p)
		byName[name] = p
		return name
	})

	ranks := fuzzy.RankFindFold(query, names)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) string {
		return byName[r.Target]
	})
}

// Complete suggests paths starting with prefix. Directories get a trailing separator;
// files are only offered when they look like media.
func Complete(prefix string) []string {
	dir, base := filepath.Split(expandHome(prefix))
	if dir == "" {
		dir = "."
	}

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil
	}

	hidden := viper.GetBool(key.TUIShowHidden) || strings.HasPrefix(base, ".")

	var suggestions []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) || (!hidden && strings.HasPrefix(name, ".")) {
			continue
		}

		full := filepath.Join(dir, name)
		if dir == "." && !strings.HasPrefix(prefix, ".") {
			full = name
		}

		switch {
		case entry.IsDir():
			suggestions = append(suggestions, full+string(filepath.Separator))
		case IsMedia(name):
			suggestions = append(suggestions, full)
		}
	}

	return suggestions
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
