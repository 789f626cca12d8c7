package main

import (
	"context"
	"os"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/ghup-bot/ghup-bot/config"
	"github.com/ghup-bot/ghup-bot/download"
	"github.com/ghup-bot/ghup-bot/githubapi"
	"github.com/ghup-bot/ghup-bot/hooks"
	"github.com/ghup-bot/ghup-bot/log"
	"github.com/ghup-bot/ghup-bot/printer"
	"github.com/ghup-bot/ghup-bot/trash"
	"github.com/ghup-bot/ghup-bot/updater"
)

func main() {
	var configPath string
	var mockAPI string
	var token string
	var verbose bool

	app := cli.NewApp()
	app.Name = "ghup"
	app.Usage = "Check and update apps from GitHub releases"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "Path to config file, '-' for stdin",
			Value:       "updater_config.json",
			Destination: &configPath,
		}, cli.StringFlag{
			Name:        "mock-api, m",
			Usage:       "Custom GitHub API base URL for testing",
			Destination: &mockAPI,
		}, cli.StringFlag{
			Name:        "token, t",
			Usage:       "GitHub personal access token",
			Destination: &token,
		}, cli.StringSliceFlag{
			Name:  "apps, A",
			Usage: "Only check apps with these names",
		}, cli.StringSliceFlag{
			Name:  "repos, R",
			Usage: "Only check apps with these repos",
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {
		ctx := context.Background()

		if verbose {
			log.L.Logger.SetLevel(logrus.DebugLevel)
		}

		baseURL := mockAPI
		if baseURL == "" {
			baseURL = envy.Get("GITHUB_API_BASE_URL", "")
		}
		baseURL = strings.TrimSuffix(baseURL, "/")
		if baseURL != "" {
			log.G(ctx).Infof("Using custom API endpoint: %s", baseURL)
		}

		cfg, baseDir, err := config.Load(configPath)
		if err != nil {
			return err
		}
		// Tag updates already applied in memory survive any later per-app
		// fault; the store is written back exactly once at exit.
		defer config.Save(ctx, cfg, configPath)

		githubToken := token
		switch {
		case githubToken != "":
			log.G(ctx).Infof("Using GitHub token from command-line argument")
		case envy.Get("GITHUB_TOKEN", "") != "":
			githubToken = envy.Get("GITHUB_TOKEN", "")
			log.G(ctx).Infof("Using GitHub token from environment variable")
		case cfg.GithubToken != "":
			githubToken = cfg.GithubToken
			log.G(ctx).Infof("Using GitHub token from config file")
		}
		if githubToken != "" {
			log.Success(ctx, "Authenticated requests enabled (5,000 req/hour limit)")
		} else {
			log.G(ctx).Infof("Using unauthenticated requests (60 req/hour limit)")
		}

		trashCfg, err := config.ResolveTrash(cfg, baseDir)
		if err != nil {
			return err
		}
		log.G(ctx).Infof("Trash directory: %s", trashCfg.Dir)

		source, err := githubapi.NewSource(ctx, githubToken, baseURL)
		if err != nil {
			return err
		}

		u := &updater.Updater{
			Source:   source,
			Download: download.New(),
			Hooks:    hooks.New(hooks.ExecRunner{}, baseDir),
			Trash:    trash.NewManager(trashCfg),
			BaseDir:  baseDir,
			Config:   cfg,
		}

		if len(cfg.Apps) == 0 {
			log.G(ctx).Warnf("No apps configured in %s", configPath)
			return nil
		}
		log.G(ctx).Infof("Found %d app(s) in config", len(cfg.Apps))

		results := u.Run(ctx, c.StringSlice("apps"), c.StringSlice("repos"))
		printer.Results(results)

		log.Success(ctx, "Update check complete!")
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.L.Fatal(err)
	}
}
