package sheets

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/nconklindev/portail/internal/table"
)

var ErrInvalidJSON = errors.New("sheets: invalid JSON")

// ParseValues decodes a values response, {"range": ..., "values": [[...]]}.
// A body without values (an empty range) yields an empty table. Non-string
// cells keep their JSON text.
func ParseValues(body []byte) (table.RawTable, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	values := gjson.GetBytes(body, "values")
	if !values.Exists() || !values.IsArray() {
		return table.RawTable{}, nil
	}

	rows := values.Array()
	raw := make(table.RawTable, 0, len(rows))
	for _, row := range rows {
		cells := row.Array()
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = cell.String()
		}
		raw = append(raw, out)
	}

	return raw, nil
}

// apiError pulls error.message out of a Google API error body.
func apiError(body []byte) string {
	return gjson.GetBytes(body, "error.message").String()
}
