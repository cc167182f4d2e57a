package report

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*Result](
	&gache.Options{
		Path:       where.Reports(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func load() (map[string]*Result, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Result), nil
	}
	return cached, nil
}

// Save persists a result, replacing one with the same ID.
func Save(r *Result) error {
	saved, err := load()
	if err != nil {
		return err
	}

	saved[r.ID.String()] = r
	return cacher.Set(saved)
}

// All returns every saved result, newest first.
func All() ([]*Result, error) {
	saved, err := load()
	if err != nil {
		return nil, err
	}

	results := lo.Values(saved)
	slices.SortFunc(results, func(a, b *Result) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return results, nil
}

// Clear removes every saved result.
func Clear() error {
	return cacher.Set(make(map[string]*Result))
}

// Filter keeps the results whose tag or media fuzzily match query.
func Filter(results []*Result, query string) []*Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	return lo.Filter(results, func(r *Result, _ int) bool {
		return fuzzy.MatchFold(query, r.Tag) || fuzzy.MatchFold(query, r.Media)
	})
}

// Failed keeps the failed results.
func Failed(results []*Result) []*Result {
	return lo.Filter(results, func(r *Result, _ int) bool {
		return !r.Passed
	})
}
