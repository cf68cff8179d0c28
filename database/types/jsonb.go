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

package databasetypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type JSONB map[string]any

// Value Marshal
func (jsonField JSONB) Value() (driver.Value, error) {
	if jsonField == nil {
		return "{}", nil
	}
	b, err := json.Marshal(jsonField)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan Unmarshal
func (jsonField *JSONB) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*jsonField = JSONB{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for jsonb column: %T", value)
	}
	return json.Unmarshal(data, jsonField)
}

func JSONBFromStruct(m any) (JSONB, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var jsonb JSONB
	err = json.Unmarshal(data, &jsonb)
	if err != nil {
		return nil, err
	}
	return jsonb, nil
}
