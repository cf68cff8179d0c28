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

package services

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/l3montree-dev/dashcase/shared"
)

// maxUploadSize bounds the bytes read from a single upload
const maxUploadSize = 10 << 20

type uploadService struct {
	storage shared.FileStorage
}

func NewUploadService(storage shared.FileStorage) *uploadService {
	return &uploadService{storage: storage}
}

func (s *uploadService) SaveImage(dir string, content io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(content, maxUploadSize+1))
	if err != nil {
		return "", shared.NewValidationError("could not read upload", err)
	}
	if len(data) == 0 {
		return "", shared.NewValidationError("no file uploaded", nil)
	}
	if len(data) > maxUploadSize {
		return "", shared.NewValidationError("file is too large", nil)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", shared.NewValidationError("only image files are allowed", nil)
	}
	// svg may carry scripts and is served from the same origin
	if mime.Is("image/svg+xml") {
		return "", shared.NewValidationError("svg images are not allowed", nil)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + mime.Extension()
	stored, err := s.storage.Save(dir, name, bytes.NewReader(data))
	if err != nil {
		return "", shared.NewUnexpectedError(err)
	}
	return path.Join(shared.StaticPrefix, stored), nil
}
