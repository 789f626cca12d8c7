// Package resolver picks the downloadable asset(s) out of a release's asset
// list according to the app's match strategy.
package resolver

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/models"
)

// ErrNotFound reports that no asset matched the pattern. Distinct from hard
// errors such as an invalid regex.
var ErrNotFound = errors.New("no matching asset found")

// Resolve returns the asset(s) from release selected by matchType and
// pattern. Release order is authoritative: first match wins, and MatchAll
// returns every asset in original order.
func Resolve(release *models.Release, pattern string, matchType models.MatchType, tag string) ([]models.Asset, error) {
	if len(release.Assets) == 0 {
		return nil, errors.Wrap(ErrNotFound, "no assets in release")
	}

	switch matchType {
	case models.MatchAll:
		out := make([]models.Asset, len(release.Assets))
		copy(out, release.Assets)
		return out, nil

	case models.MatchFixed:
		for _, a := range release.Assets {
			if a.Name == pattern {
				return []models.Asset{a}, nil
			}
		}
		return nil, ErrNotFound

	case models.MatchRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid regex pattern %q", pattern)
		}
		for _, a := range release.Assets {
			// Anchored at the start of the name, not a substring search.
			if loc := re.FindStringIndex(a.Name); loc != nil && loc[0] == 0 {
				return []models.Asset{a}, nil
			}
		}
		return nil, ErrNotFound

	case models.MatchTag:
		variants := TagVariants(pattern, tag)
		for _, a := range release.Assets {
			for _, want := range variants {
				if a.Name == want {
					return []models.Asset{a}, nil
				}
			}
		}
		return nil, ErrNotFound

	default:
		return nil, errors.Errorf("unknown match type %q", matchType)
	}
}
