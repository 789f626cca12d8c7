package printer

import (
	"github.com/blang/semver"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/ghup-bot/ghup-bot/updater"
)

// Results prints the end-of-run summary table.
func Results(results []updater.Result) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("App", "Repo", "CurrentTag", "LatestTag", "Status")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, r := range results {
		status := string(r.Status)
		if r.Status == updater.StatusUpdated && isDowngrade(r.PreviousTag, r.LatestTag) {
			status += " (downgrade)"
		}
		tbl.AddRow(r.App.DisplayName(), r.App.Repo, r.PreviousTag, r.LatestTag, status)
	}

	tbl.Print()
}

// isDowngrade classifies the tag transition when both tags parse as semver.
// Display only; the updater itself never compares versions.
func isDowngrade(previous, latest string) bool {
	pv, err := semver.ParseTolerant(previous)
	if err != nil {
		return false
	}
	lv, err := semver.ParseTolerant(latest)
	if err != nil {
		return false
	}
	return lv.LT(pv)
}
