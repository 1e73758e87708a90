// Package update checks GitHub releases for a newer version.
package update

import (
	"github.com/tcnksm/go-latest"
)

// Result reports the outcome of a release check.
type Result struct {
	Outdated bool
	Latest   string
}

// Check compares the current version against the newest release tag.
// Network failures return ok=false; the caller stays silent about them.
func Check(currentVer string) (Result, bool) {
	githubTag := &latest.GithubTag{
		Owner:      "mizutanik",
		Repository: "promptpulse",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return Result{}, false
	}
	return Result{Outdated: res.Outdated, Latest: res.Current}, true
}
