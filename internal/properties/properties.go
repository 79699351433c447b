// Package properties loads the key=value tables used for mail subjects,
// day-length labels and the booking policy.
package properties

import (
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// Table is a read-only lookup over one properties file. A Table is never nil
// after Load; a file that could not be read yields an empty table.
type Table struct {
	props *properties.Properties
}

// Load reads path once. A missing or broken file is logged and an empty
// table is returned so that callers keep working in a degraded mode.
func Load(path string, logger *zap.SugaredLogger) *Table {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		logger.Errorw("No properties file found", "path", path, "error", err)
		return Empty()
	}
	logger.Infow("Loaded properties file", "path", path, "keys", p.Len())
	return &Table{props: p}
}

// FromString parses an in-memory properties document.
func FromString(s string) (*Table, error) {
	p, err := properties.LoadString(s)
	if err != nil {
		return nil, err
	}
	return &Table{props: p}, nil
}

func Empty() *Table {
	return &Table{props: properties.NewProperties()}
}

// Get returns the value for key and whether it was present.
func (t *Table) Get(key string) (string, bool) {
	return t.props.Get(key)
}

// Message returns the text for key, or the key itself when it is missing.
func (t *Table) Message(key string) string {
	if v, ok := t.props.Get(key); ok {
		return v
	}
	return key
}

// Int returns the integer stored under key. ok is false when the key is
// missing or not a number.
func (t *Table) Int(key string) (int, bool) {
	v, found := t.props.Get(key)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
