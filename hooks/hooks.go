// Package hooks implements the external hook protocol: caller-supplied
// programs that either filter a release's candidate assets or react to a
// finished download. Both kinds share one invocation contract: the command
// resolves against the config directory, declared arguments are appended,
// UPDATER_* variables are layered over the inherited environment, and the
// process runs in the config directory under a hard timeout.
package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/log"
	"github.com/ghup-bot/ghup-bot/models"
)

// ErrTimeout reports that a hook exceeded the invocation timeout, as
// opposed to rejecting its input with a non-zero exit.
var ErrTimeout = errors.New("hook timed out")

type Hooks struct {
	Runner  Runner
	BaseDir string

	// Hook output is forwarded here. Defaults to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

func New(runner Runner, baseDir string) *Hooks {
	return &Hooks{Runner: runner, BaseDir: baseDir, Stdout: os.Stdout, Stderr: os.Stderr}
}

// resolveCommand absolutizes a relative hook command that exists under the
// config directory. Anything else passes through untouched so commands on
// PATH keep working.
func (h *Hooks) resolveCommand(command string) string {
	if filepath.IsAbs(command) {
		return command
	}
	joined := filepath.Join(h.BaseDir, command)
	if _, err := os.Stat(joined); err == nil {
		return joined
	}
	return command
}

func (h *Hooks) env(vars map[string]string) []string {
	env := os.Environ()
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return env
}

// FindAssets runs the app's find-assets hook against the release's asset
// names and returns the assets whose names appear in the hook's answer,
// preserving release order.
//
// Contract: the hook receives a JSON array of asset names on stdin. On exit
// code 0 every stdout line except the last is forwarded verbatim, and the
// last line must be a JSON array of the selected names. Stderr is forwarded
// regardless of outcome.
func (h *Hooks) FindAssets(ctx context.Context, app *models.AppEntry, release *models.Release, installPath string) ([]models.Asset, error) {
	command := h.resolveCommand(app.FindAssetsHook)

	names := make([]string, 0, len(release.Assets))
	for _, a := range release.Assets {
		names = append(names, a.Name)
	}
	stdin, err := json.Marshal(names)
	if err != nil {
		return nil, errors.Wrap(err, "encoding asset names")
	}

	log.G(ctx).Infof("Running find-assets hook: %s", command)

	res, err := h.Runner.Run(ctx, command, app.FindAssetsHookArgs, h.BaseDir, h.env(map[string]string{
		"UPDATER_APP_NAME":    app.Name,
		"UPDATER_REPO":        app.Repo,
		"UPDATER_CURRENT_TAG": app.Tag,
		"UPDATER_LATEST_TAG":  release.TagName,
		"UPDATER_INSTALL_DIR": installPath,
		"UPDATER_CONFIG_DIR":  h.BaseDir,
	}), string(stdin))
	if err != nil {
		return nil, errors.Wrap(err, "find-assets hook")
	}

	if res.Stderr != "" {
		fmt.Fprint(h.Stderr, res.Stderr)
	}
	if res.TimedOut {
		return nil, ErrTimeout
	}
	if res.ExitCode != 0 || res.Stdout == "" {
		return nil, errors.Errorf("find-assets hook failed with exit code %d", res.ExitCode)
	}

	// Everything before the final line is hook logging; the final line is
	// the structured answer. A trailing newline would leave an empty final
	// segment, which fails the parse below. Existing hook scripts rely on
	// this exact framing.
	lines := strings.Split(res.Stdout, "\n")
	fmt.Fprintln(h.Stdout, strings.Join(lines[:len(lines)-1], "\n"))

	var selected []string
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &selected); err != nil {
		return nil, errors.Wrap(err, "find-assets hook did not return a JSON list of asset names")
	}

	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}
	var out []models.Asset
	for _, a := range release.Assets {
		if wanted[a.Name] {
			out = append(out, a)
		}
	}

	log.Success(ctx, "Find-assets hook completed successfully")
	return out, nil
}

// PostDownload runs the app's post-download hook for a file that just
// landed. The download and tag update are already committed; a failure here
// is reported to the caller but reverts nothing.
func (h *Hooks) PostDownload(ctx context.Context, app *models.AppEntry, outputPath, assetName, latestTag string) error {
	command := h.resolveCommand(app.PostDownloadHook)

	log.G(ctx).Infof("Running post-download hook: %s", command)

	res, err := h.Runner.Run(ctx, command, app.PostDownloadHookArgs, h.BaseDir, h.env(map[string]string{
		"UPDATER_APP_NAME":   app.Name,
		"UPDATER_REPO":       app.Repo,
		"UPDATER_TAG":        latestTag,
		"UPDATER_ASSET_NAME": assetName,
		"UPDATER_FILE_PATH":  outputPath,
		"UPDATER_FILE_DIR":   filepath.Dir(outputPath),
		"UPDATER_FILE_NAME":  filepath.Base(outputPath),
		"UPDATER_CONFIG_DIR": h.BaseDir,
	}), "")
	if err != nil {
		return errors.Wrap(err, "post-download hook")
	}

	if res.Stdout != "" {
		fmt.Fprint(h.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(h.Stderr, res.Stderr)
	}
	if res.TimedOut {
		return ErrTimeout
	}
	if res.ExitCode != 0 {
		return errors.Errorf("post-download hook failed with exit code %d", res.ExitCode)
	}

	log.Success(ctx, "Post-download hook completed successfully")
	return nil
}
