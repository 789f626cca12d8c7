// Package updater drives the per-app update flow: compare the recorded tag
// against the latest release, pick candidate assets, retire the superseded
// file, download, and record the new tag.
package updater

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/hooks"
	"github.com/ghup-bot/ghup-bot/log"
	"github.com/ghup-bot/ghup-bot/models"
	"github.com/ghup-bot/ghup-bot/resolver"
	"github.com/ghup-bot/ghup-bot/trash"
)

// ReleaseSource fetches release metadata for a repository.
type ReleaseSource interface {
	LatestRelease(ctx context.Context, repo string, usePrerelease bool) (*models.Release, error)
}

// Downloader fetches an asset URL into a local path.
type Downloader interface {
	Download(ctx context.Context, url, outputPath string) error
}

type Status string

const (
	StatusUpToDate  Status = "up to date"
	StatusUpdated   Status = "updated"
	StatusInstalled Status = "installed"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one app's update check.
type Result struct {
	App         *models.AppEntry
	PreviousTag string
	LatestTag   string
	Status      Status
	Err         error
}

type Updater struct {
	Source   ReleaseSource
	Download Downloader
	Hooks    *hooks.Hooks
	Trash    *trash.Manager
	BaseDir  string
	Config   *models.Config
}

// Run processes the configured apps in declared order. When appNames or
// repoNames are non-empty, only apps matching either list run. Failures are
// isolated per app: any error or panic is recorded and the batch continues.
func (u *Updater) Run(ctx context.Context, appNames, repoNames []string) []Result {
	var results []Result
	for _, app := range u.Config.Apps {
		if !selected(app, appNames, repoNames) {
			continue
		}
		res := u.updateAppSafe(ctx, app)
		if res.Err != nil {
			log.G(ctx).Errorf("%v", res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (u *Updater) updateAppSafe(ctx context.Context, app *models.AppEntry) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				App:         app,
				PreviousTag: app.Tag,
				Status:      StatusFailed,
				Err:         errors.Errorf("unexpected error updating %s: %v", app.DisplayName(), r),
			}
		}
	}()
	return u.UpdateApp(ctx, app)
}

func selected(app *models.AppEntry, appNames, repoNames []string) bool {
	if len(appNames) == 0 && len(repoNames) == 0 {
		return true
	}
	for _, name := range appNames {
		if app.Name == name {
			return true
		}
	}
	for _, repo := range repoNames {
		if app.Repo == repo {
			return true
		}
	}
	return false
}

// UpdateApp checks and updates a single app. The recorded tag is mutated in
// memory on the first successful candidate download; persisting it is the
// caller's responsibility.
func (u *Updater) UpdateApp(ctx context.Context, app *models.AppEntry) Result {
	name := app.DisplayName()
	currentTag := app.Tag
	res := Result{App: app, PreviousTag: currentTag, Status: StatusFailed}

	if err := validate(app); err != nil {
		res.Err = err
		return res
	}

	installPath := app.InstallPath
	if !filepath.IsAbs(installPath) {
		installPath = filepath.Join(u.BaseDir, installPath)
	}

	log.G(ctx).Infof("Checking %s...", name)
	log.G(ctx).Infof("Current tag: %s", currentTag)
	log.G(ctx).Infof("Repository: %s", app.Repo)
	log.G(ctx).Infof("Check pre-releases: %v", app.UsePrerelease)

	release, err := u.Source.LatestRelease(ctx, app.Repo, app.UsePrerelease)
	if err != nil {
		res.Err = errors.Wrapf(err, "fetching latest release for %s", app.Repo)
		return res
	}

	latestTag := release.TagName
	res.LatestTag = latestTag
	log.G(ctx).Infof("Latest tag: %s", latestTag)

	isUpdate := currentTag != latestTag
	if isUpdate {
		log.Success(ctx, "New version available!")
	} else {
		log.G(ctx).Infof("Already on latest version")
		if _, err := os.Stat(installPath); err == nil {
			log.Success(ctx, "File exists, no action needed")
			res.Status = StatusUpToDate
			return res
		}
		// The file went missing: re-download as a fresh install, with no
		// retirement step against a fictitious previous version.
		log.G(ctx).Warnf("File not found at %s, will re-download", installPath)
	}

	var assets []models.Asset
	if app.FindAssetsHook != "" {
		assets, err = u.Hooks.FindAssets(ctx, app, release, installPath)
	} else {
		assets, err = resolver.Resolve(release, app.AssetPattern, app.EffectiveMatchType(), latestTag)
	}
	if err != nil {
		res.Err = errors.Wrapf(err, "finding assets for %s", name)
		return res
	}
	if len(assets) == 0 {
		if app.FindAssetsHook != "" {
			res.Err = errors.Errorf("find-assets hook selected no assets for %s", name)
		} else {
			res.Err = errors.Errorf("no matching assets found for pattern %q (type: %s)", app.AssetPattern, app.EffectiveMatchType())
		}
		return res
	}

	downloaded := 0
	for _, asset := range assets {
		if asset.BrowserDownloadURL == "" {
			log.G(ctx).Errorf("Asset %s has no download URL", asset.Name)
			continue
		}

		log.G(ctx).Infof("Matched asset: %s (%s)", asset.Name, humanize.Bytes(uint64(asset.Size)))

		outputPath, prevFilePath := candidatePaths(app, installPath, asset.Name, currentTag, latestTag)

		if isUpdate {
			if _, err := os.Stat(prevFilePath); err == nil {
				if _, err := u.Trash.Retire(ctx, prevFilePath, currentTag); err != nil {
					log.G(ctx).Warnf("Failed to move old version to trash, continuing anyway: %v", err)
				}
			}
		}

		if err := u.Download.Download(ctx, asset.BrowserDownloadURL, outputPath); err != nil {
			log.G(ctx).Errorf("Failed to download %s: %v", name, err)
			continue
		}
		downloaded++

		app.Tag = latestTag
		if isUpdate {
			log.Success(ctx, "%s updated from %s to %s", name, currentTag, latestTag)
		} else {
			log.Success(ctx, "%s downloaded (version %s)", name, latestTag)
		}

		if app.PostDownloadHook != "" {
			if err := u.Hooks.PostDownload(ctx, app, outputPath, asset.Name, latestTag); err != nil {
				log.G(ctx).Errorf("Post-download hook failed: %v", err)
			}
		}
	}

	if downloaded == 0 {
		res.Err = errors.Errorf("no assets downloaded for %s", name)
		return res
	}
	if isUpdate {
		res.Status = StatusUpdated
	} else {
		res.Status = StatusInstalled
	}
	return res
}

// validate enforces the required-field rule: repository and install path
// always; the asset pattern only when neither MatchAll nor a find-assets
// hook removes the need for one.
func validate(app *models.AppEntry) error {
	missing := app.Repo == "" || app.InstallPath == ""
	if app.EffectiveMatchType() != models.MatchAll && app.FindAssetsHook == "" {
		missing = missing || app.AssetPattern == ""
	}
	if missing {
		return errors.Errorf("app %q is missing required fields", app.DisplayName())
	}
	return nil
}

// candidatePaths derives the download destination and the location of the
// previous version according to the install-path policy. Under MatchAll,
// a find-assets hook, or the asset_name policy the install path is a
// directory joined with the asset name; under the tag policy the filename
// carries the version and both paths are rendered from their own tag.
func candidatePaths(app *models.AppEntry, installPath, assetName, currentTag, latestTag string) (outputPath, prevFilePath string) {
	switch {
	case app.EffectiveMatchType() == models.MatchAll ||
		app.EffectiveInstallPathMatchType() == models.InstallPathAssetName ||
		app.FindAssetsHook != "":
		joined := filepath.Join(installPath, assetName)
		return joined, joined
	case app.EffectiveInstallPathMatchType() == models.InstallPathTag:
		dir := filepath.Dir(installPath)
		base := filepath.Base(installPath)
		return filepath.Join(dir, resolver.TagVariants(base, latestTag)[0]),
			filepath.Join(dir, resolver.TagVariants(base, currentTag)[0])
	default:
		return installPath, installPath
	}
}
