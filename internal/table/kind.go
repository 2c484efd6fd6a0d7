package table

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Kind tells the row mapper how to coerce the cells of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDateFR
	KindDateTimeFR
	KindTimeOfDay
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDateFR:
		return "date"
	case KindDateTimeFR:
		return "datetime"
	case KindTimeOfDay:
		return "time"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Column declares one expected sheet column.
type Column struct {
	Name string
	Kind Kind
}

// ColumnSpec lists the columns a caller expects from a sheet. Header matching
// is case-insensitive and ignores surrounding whitespace.
type ColumnSpec []Column

var (
	ErrEmptySpec       = errors.New("table: empty column spec")
	ErrEmptyColumnName = errors.New("table: empty column name")
	ErrDuplicateColumn = errors.New("table: duplicate column")
)

func TextColumn(name string) Column     { return Column{Name: name, Kind: KindText} }
func NumberColumn(name string) Column   { return Column{Name: name, Kind: KindNumber} }
func DateColumn(name string) Column     { return Column{Name: name, Kind: KindDateFR} }
func DateTimeColumn(name string) Column { return Column{Name: name, Kind: KindDateTimeFR} }
func TimeColumn(name string) Column     { return Column{Name: name, Kind: KindTimeOfDay} }

// Validate reports configuration mistakes: an empty spec, a blank column
// name, or two columns that fold to the same header.
func (s ColumnSpec) Validate() error {
	if len(s) == 0 {
		return ErrEmptySpec
	}

	fold := cases.Fold()
	seen := make(map[string]bool, len(s))
	for i, col := range s {
		key := headerKey(fold, col.Name)
		if key == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnName)
		}
		if seen[key] {
			return fmt.Errorf("%q: %w", col.Name, ErrDuplicateColumn)
		}
		seen[key] = true
	}

	return nil
}

// Names returns the declared column names in spec order.
func (s ColumnSpec) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// headerKey normalizes a header for comparison. Casers keep state, so
// callers pass their own.
func headerKey(fold cases.Caser, s string) string {
	return fold.String(strings.TrimSpace(s))
}
