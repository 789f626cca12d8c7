// Package trash retires superseded files into an archive directory instead
// of deleting them.
package trash

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ghup-bot/ghup-bot/log"
	"github.com/ghup-bot/ghup-bot/models"
)

type Manager struct {
	Dir        string
	AppendTag  bool
	AppendDate bool

	// Now is the clock for date suffixes. Nil means time.Now.
	Now func() time.Time
}

func NewManager(tc models.TrashConfig) *Manager {
	return &Manager{Dir: tc.Dir, AppendTag: tc.AppendTag, AppendDate: tc.AppendDate}
}

// Retire moves filePath into the trash directory under a collision-free
// name and returns the destination. The archive name is the file's stem,
// optionally suffixed with the sanitized old tag and a timestamp, with an
// increasing counter appended until the name is free. An existing archived
// file is never overwritten.
func (m *Manager) Retire(ctx context.Context, filePath, oldTag string) (string, error) {
	stem, ext := splitArchiveExt(filepath.Base(filePath))

	name := stem
	if m.AppendTag {
		name += "_" + strings.ReplaceAll(oldTag, "/", "_")
	}
	if m.AppendDate {
		now := time.Now
		if m.Now != nil {
			now = m.Now
		}
		name += "_" + now().Format("20060102_150405")
	}

	dest := filepath.Join(m.Dir, name+ext)
	for count := 1; ; count++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.Dir, fmt.Sprintf("%s_%d%s", name, count, ext))
	}

	log.G(ctx).Infof("Moving old version to trash: %s", dest)
	if err := os.Rename(filePath, dest); err != nil {
		return "", errors.Wrap(err, "moving file to trash")
	}
	return dest, nil
}

// splitArchiveExt splits a filename into stem and extension, folding a
// secondary ".tar" segment into the extension so "app.tar.gz" retires as
// ("app", ".tar.gz") rather than splitting the archive suffix in two.
func splitArchiveExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if strings.HasSuffix(stem, ".tar") {
		ext = ".tar" + ext
		stem = strings.TrimSuffix(stem, ".tar")
	}
	return stem, ext
}
