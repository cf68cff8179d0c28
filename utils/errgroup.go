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

package utils

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

type errGroup[T any] struct {
	group   *errgroup.Group
	mu      sync.Mutex
	results []T
}

// ErrGroup runs at most limit functions at once and collects their results.
func ErrGroup[T any](limit int) *errGroup[T] {
	g := &errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &errGroup[T]{group: g}
}

func (e *errGroup[T]) Go(f func() (T, error)) {
	e.group.Go(func() error {
		res, err := f()
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.results = append(e.results, res)
		e.mu.Unlock()
		return nil
	})
}

// WaitAndCollect returns the first error or the results in completion order.
func (e *errGroup[T]) WaitAndCollect() ([]T, error) {
	if err := e.group.Wait(); err != nil {
		return nil, err
	}
	return e.results, nil
}
