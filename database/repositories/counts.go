package repositories

import (
	"strings"

	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/gorm"
)

type countRow struct {
	Ref   string
	Count int64
}

// countBy counts the rows of model per value of the foreign key column, restricted to ids.
func countBy(db *gorm.DB, model any, column string, ids []string) (map[string]int64, error) {
	res := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var rows []countRow
	err := db.Model(model).
		Select(column+" AS ref, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		res[r.Ref] = r.Count
	}
	return res, nil
}

type relationCount struct {
	key    string
	model  any
	column string
}

// collectCounts runs one grouped count query per relation and folds the results into a
// Counts map per id. Ids without related rows get explicit zero counts.
func collectCounts(db *gorm.DB, ids []string, relations ...relationCount) (map[string]dtos.Counts, error) {
	res := make(map[string]dtos.Counts, len(ids))
	for _, id := range ids {
		c := make(dtos.Counts, len(relations))
		for _, r := range relations {
			c[r.key] = 0
		}
		res[id] = c
	}
	for _, r := range relations {
		counts, err := countBy(db, r.model, r.column, ids)
		if err != nil {
			return nil, err
		}
		for id, n := range counts {
			if c, ok := res[id]; ok {
				c[r.key] = n
			}
		}
	}
	return res, nil
}

type statusRow struct {
	Status string
	Count  int64
}

func toStatusCounts(rows []statusRow) []dtos.StatusCount {
	res := make([]dtos.StatusCount, len(rows))
	for i, r := range rows {
		res[i] = dtos.StatusCount{Status: r.Status, Count: r.Count}
	}
	return res
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

// paginate counts the filtered query and loads the requested page. The scopes are only applied
// to the page query, so preloads never run for the count. Rows with equal order keys are
// ordered by id so consecutive pages never overlap.
func paginate[T any](query *gorm.DB, pageInfo shared.PageInfo, order string, scopes ...func(*gorm.DB) *gorm.DB) (shared.Paged[T], error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paged[T]{}, err
	}

	ts := []T{}
	if err := pageInfo.ApplyOnDB(base.Scopes(scopes...).Order(order).Order("id ASC")).Find(&ts).Error; err != nil {
		return shared.Paged[T]{}, err
	}
	return shared.NewPaged(pageInfo, total, ts), nil
}
