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

package controllers

import (
	"fmt"

	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
)

func bindAndValidate(ctx shared.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return shared.NewValidationError("could not decode request", err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.NewValidationError(fmt.Sprintf("could not validate request: %s", err.Error()), err)
	}
	return nil
}

type enum interface {
	~string
	IsValid() bool
}

// enumQuery returns nil when the parameter is absent and a validation error when
// it holds an unknown value.
func enumQuery[T enum](ctx shared.Context, name string) (*T, error) {
	v := shared.GetOptionalQuery(ctx, name)
	if v == nil {
		return nil, nil
	}
	value := T(*v)
	if !value.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("invalid %s: %s", name, *v), nil)
	}
	return &value, nil
}

func enumParam[T enum](ctx shared.Context, name string) (T, error) {
	value := T(shared.GetParam(ctx, name))
	if !value.IsValid() {
		return value, shared.NewValidationError(fmt.Sprintf("invalid %s: %s", name, value), nil)
	}
	return value, nil
}

// countsOf loads the child counts of one entity. Relations without children are
// present with a zero count.
func countsOf(counter func(ids []string) (map[string]dtos.Counts, error), id string) (dtos.Counts, error) {
	counts, err := counter([]string{id})
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	return counts[id], nil
}
