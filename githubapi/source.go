// Package githubapi fetches release metadata from the GitHub releases API.
package githubapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghApi "github.com/google/go-github/v32/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/ghup-bot/ghup-bot/models"
)

// metadataTimeout bounds a single release metadata request.
const metadataTimeout = 30 * time.Second

type Source struct {
	Client *ghApi.Client
}

// NewSource builds a release source. A non-empty token enables bearer
// authentication; a non-empty baseURL points the client at a different API
// endpoint, e.g. a local mock server.
func NewSource(ctx context.Context, token, baseURL string) (*Source, error) {
	hc := &http.Client{Timeout: metadataTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, hc), ts)
	}

	client := ghApi.NewClient(hc)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrap(err, "parsing API base URL")
		}
		client.BaseURL = u
	}
	return &Source{Client: client}, nil
}

// LatestRelease returns the newest release for repo ("owner/name"). With
// usePrerelease false that is the latest published non-prerelease; with
// usePrerelease true it is the head of the full release list, which the API
// is assumed to return newest first.
func (s *Source) LatestRelease(ctx context.Context, repo string, usePrerelease bool) (*models.Release, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	if usePrerelease {
		releases, resp, err := s.Client.Repositories.ListReleases(ctx, owner, name, &ghApi.ListOptions{})
		if err != nil {
			return nil, wrapAPIErr(err, resp)
		}
		if len(releases) == 0 {
			return nil, errors.Errorf("no releases found for %s", repo)
		}
		return convert(releases[0]), nil
	}

	release, resp, err := s.Client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		return nil, wrapAPIErr(err, resp)
	}
	return convert(release), nil
}

func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid repository %q, expected owner/repo", repo)
	}
	return parts[0], parts[1], nil
}

func wrapAPIErr(err error, resp *ghApi.Response) error {
	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		return errors.Wrap(err, "authentication failed, check your GitHub token")
	}
	return err
}

func convert(r *ghApi.RepositoryRelease) *models.Release {
	rel := &models.Release{
		TagName:    r.GetTagName(),
		Prerelease: r.GetPrerelease(),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, models.Asset{
			Name:               a.GetName(),
			BrowserDownloadURL: a.GetBrowserDownloadURL(),
			Size:               int64(a.GetSize()),
		})
	}
	return rel
}
