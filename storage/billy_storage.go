// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"fmt"
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/l3montree-dev/dashcase/config"
)

type BillyStorage struct {
	fs billy.Filesystem
}

func NewBillyStorage(fs billy.Filesystem) *BillyStorage {
	return &BillyStorage{fs: fs}
}

// NewUploadStorage stores files below the configured upload directory.
func NewUploadStorage(cfg config.Config) *BillyStorage {
	return NewBillyStorage(osfs.New(cfg.UploadDir))
}

func (s *BillyStorage) Save(dir, name string, content io.Reader) (string, error) {
	if name == "" || path.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create directory %s: %w", dir, err)
	}

	target := s.fs.Join(dir, name)
	f, err := s.fs.Create(target)
	if err != nil {
		return "", fmt.Errorf("could not create %s: %w", target, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return "", fmt.Errorf("could not write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(dir, name), nil
}
