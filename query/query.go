// Package query remembers fetched targets and suggests them back for shell completion.
package query

import (
	"strings"
	"sync"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type targetRecord struct {
	Rank   int    `json:"rank"`
	Target string `json:"target"`
}

var cacher = filesystem.NewCache[map[string]*targetRecord](where.Queries(), 0)

var (
	mu              sync.Mutex
	suggestionCache = make(map[string][]*targetRecord)
)

// Remember records target, or raises its rank by weight when already known.
// It is a no-op when history.save is off.
func Remember(target string, weight int) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	target = normalize(target)
	if target == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*targetRecord)
	}

	if record, ok := cached[target]; ok {
		record.Rank += weight
	} else {
		cached[target] = &targetRecord{Rank: weight, Target: target}
	}

	clear(suggestionCache)
	return cacher.Set(cached)
}

// Suggest returns the highest ranked target matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered targets fuzzy-matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.HistorySave) {
		return []string{}
	}

	q = normalize(q)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestionCache[q]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if fuzzy.MatchFold(q, record.Target) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *targetRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Target, b.Target)
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *targetRecord, _ int) string {
		return r.Target
	})
}

// normalize drops surrounding space and the https:// prefix the CLI adds
// by default, so "example.com" and "https://example.com" share a record.
func normalize(target string) string {
	target = strings.TrimSpace(target)
	target = strings.TrimPrefix(target, "https://")
	return strings.TrimSuffix(target, "/")
}
