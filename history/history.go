// Package history remembers played sources and where playback left off.
package history

import (
	"cmp"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// resumeMargin is how close to the end a position must be to count as finished.
const resumeMargin = 5 * time.Second

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// now is swapped in tests.
var now = time.Now

// Get returns every entry keyed by locator.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Recent returns the entries, most recently played first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		if c := b.PlayedAt.Compare(a.PlayedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Locator, b.Locator)
	})

	return entries, nil
}

// Last returns the most recently played entry.
func Last() (mo.Option[*Entry], error) {
	entries, err := Recent()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if len(entries) == 0 {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entries[0]), nil
}

// Search returns the entries whose name or locator fuzzy matches query, best match first.
func Search(query string) ([]*Entry, error) {
	entries, err := Recent()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return entries, nil
	}

	byTarget := make(map[string]*Entry)
	targets := make([]string, 0, len(entries))
	for _, e := range entries {
		target := e.Name + " " + e.Locator
		byTarget[target] = e
		targets = append(targets, target)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) *Entry {
		return byTarget[r.Target]
	}), nil
}

// Save records that source was played up to position.
func Save(source transport.Source, position, duration time.Duration) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	entry := &Entry{
		Locator:  source.Locator,
		Name:     source.Name,
		Position: int(max(position, 0) / time.Second),
		Duration: int(max(duration, 0) / time.Second),
		PlayedAt: now(),
	}

	saved[entry.encode()] = entry
	return cacher.Set(saved)
}

// Remove deletes an entry.
func Remove(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, entry.encode())
	return cacher.Set(saved)
}

// ResumeOffset returns where playback of locator should continue, if anywhere.
// Finished sources and live streams start over.
func ResumeOffset(locator string) mo.Option[time.Duration] {
	saved, err := Get()
	if err != nil {
		return mo.None[time.Duration]()
	}

	entry, ok := saved[locator]
	if !ok || entry.Duration <= 0 || entry.Position <= 0 {
		return mo.None[time.Duration]()
	}

	if entry.Offset() >= time.Duration(entry.Duration)*time.Second-resumeMargin {
		return mo.None[time.Duration]()
	}

	return mo.Some(entry.Offset())
}

// ResumeFraction is ResumeOffset as a fraction of duration, ready for a seek.
func ResumeFraction(locator string, duration time.Duration) mo.Option[float64] {
	if duration <= 0 || !viper.GetBool(key.HistoryResume) {
		return mo.None[float64]()
	}

	offset, ok := ResumeOffset(locator).Get()
	if !ok || offset >= duration {
		return mo.None[float64]()
	}

	return mo.Some(float64(offset) / float64(duration))
}

// Track saves the position shown by r when history is enabled and something is loaded.
func Track(r *reflector.Reflector) error {
	if !viper.GetBool(key.HistorySave) || !r.State().Loaded() {
		return nil
	}

	return Save(r.Source(), r.Offset(), r.Duration())
}
