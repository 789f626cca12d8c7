// Package config loads and persists the updater's JSON configuration store.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/log"
	"github.com/ghup-bot/ghup-bot/models"
)

// Stdin selects reading the store from standard input and writing it back
// to standard output.
const Stdin = "-"

const exampleConfig = `{
  "trash_config": {
    "trash_path": ".trash",
    "append_tag": true,
    "append_date": false
  },
  "github_token": "ghp_xxxxxxxxxxxx",
  "apps": [
    {
      "name": "App Name",
      "repo": "owner/repo",
      "tag": "current_tag",
      "asset_pattern": "filename.zip",
      "asset_match_type": "fixed",
      "install_path": "./path/filename.zip",
      "use_prerelease": false,
      "post_download_hook": "optional_command_to_run.sh",
      "post_download_hook_args": ["--arg1", "--arg2"]
    }
  ]
}`

// Load reads and validates the store at path ("-" for stdin) and returns it
// together with the base directory all relative paths resolve against.
func Load(path string) (*models.Config, string, error) {
	var data []byte
	var baseDir string

	if path == Stdin {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", errors.Wrap(err, "resolving working directory")
		}
		baseDir = wd
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", errors.Wrap(err, "reading config from stdin")
		}
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", errors.Wrapf(err, "resolving config path %s", path)
		}
		baseDir = filepath.Dir(abs)
		data, err = os.ReadFile(abs)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Config file format is as shown below:\n%s\n", exampleConfig)
				return nil, "", errors.Errorf("missing config file: %s", abs)
			}
			return nil, "", errors.Wrap(err, "reading config file")
		}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, "", errors.Wrap(err, "invalid JSON in config file")
	}
	if _, ok := probe["apps"]; !ok {
		return nil, "", errors.New("config file must contain an 'apps' array")
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, "", errors.Wrap(err, "invalid JSON in config file")
	}
	return &cfg, baseDir, nil
}

// Save writes the store back: to stdout for the stdin store, otherwise over
// the existing file. Errors are logged, not returned, so an exit-time save
// never masks the run's outcome.
func Save(ctx context.Context, cfg *models.Config, path string) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.G(ctx).Errorf("Error saving config file: %v", err)
		return
	}
	data = append(data, '\n')

	if path == Stdin {
		os.Stdout.Write(data)
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		log.G(ctx).Errorf("Error saving config file: %v", err)
		return
	}
	if _, err := os.Stat(abs); err != nil {
		return
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		log.G(ctx).Errorf("Error saving config file: %v", err)
	}
}

// ResolveTrash returns the effective trash settings: defaults applied,
// relative path anchored at baseDir, directory created eagerly. The
// resolved directory lives only on the returned copy, never back in cfg.
func ResolveTrash(cfg *models.Config, baseDir string) (models.TrashConfig, error) {
	tc := models.TrashConfig{TrashPath: ".trash", AppendTag: true}
	if cfg.Trash != nil {
		tc = *cfg.Trash
	}

	dir := tc.TrashPath
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return tc, errors.Wrap(err, "creating trash directory")
	}
	tc.Dir = dir
	return tc, nil
}

