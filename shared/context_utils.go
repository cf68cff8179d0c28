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

package shared

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/l3montree-dev/dashcase/database/models"
)

func GetParam(ctx Context, name string) string {
	v := ctx.Param(name)
	unescaped, err := url.PathUnescape(v)
	if err != nil {
		return SanitizeParam(v)
	}
	return SanitizeParam(unescaped)
}

// the session is the user which was resolved from the bearer token.
// it is read from storage on every request.
func SetSession(ctx Context, user models.User) {
	ctx.Set("session", user)
}

func GetSession(ctx Context) models.User {
	return ctx.Get("session").(models.User)
}

func MaybeGetSession(ctx Context) (models.User, bool) {
	user, ok := ctx.Get("session").(models.User)
	return user, ok
}

type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}

func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func (p Paged[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

func (p Paged[T]) Pagination() *Pagination {
	return &Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
	}
}

func (p Paged[T]) Map(f func(T) any) Paged[any] {
	data := make([]any, len(p.Data))
	for i, d := range p.Data {
		data[i] = f(d)
	}
	return Paged[any]{
		PageInfo: p.PageInfo,
		Total:    p.Total,
		Data:     data,
	}
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func GetPageInfo(ctx Context) PageInfo {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	limitParam := ctx.QueryParam("limit")
	if limitParam == "" {
		// older clients still send pageSize
		limitParam = ctx.QueryParam("pageSize")
	}
	limit, _ := strconv.Atoi(limitParam)
	switch {
	case limit > MaxPageSize:
		limit = MaxPageSize
	case limit <= 0:
		limit = DefaultPageSize
	}

	return PageInfo{
		Page:  page,
		Limit: limit,
	}
}

// GetBoundedInt reads an integer query parameter and clamps it into [min, max]
func GetBoundedInt(ctx Context, name string, def, min, max int) int {
	v, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func GetSearch(ctx Context) string {
	return strings.TrimSpace(ctx.QueryParam("search"))
}

// GetOptionalQuery returns nil if the parameter is absent or empty
func GetOptionalQuery(ctx Context, name string) *string {
	v := strings.TrimSpace(ctx.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}
