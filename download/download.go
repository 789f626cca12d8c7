// Package download streams release assets to their install location.
package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/log"
)

type Client struct {
	HTTP *http.Client
}

func New() *Client {
	// No timeout on the transfer itself; large assets may legitimately take
	// longer than any metadata deadline.
	return &Client{HTTP: &http.Client{}}
}

// Download fetches url into outputPath, creating parent directories as
// needed. A partial file from a failed transfer is left in place for the
// next run to overwrite.
func (c *Client) Download(ctx context.Context, url, outputPath string) error {
	log.G(ctx).Infof("Downloading from %s...", url)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building download request")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "downloading file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s downloading %s", resp.Status, url)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		return errors.Wrap(err, "writing file")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}

	log.Success(ctx, "Downloaded %s to %s", humanize.Bytes(uint64(n)), outputPath)
	return nil
}
