// Package catalog resolves remote revision names to their code tables.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"arcology/ircode"
	"arcology/ircode/reva"
	"arcology/ircode/revb"
)

var ErrUnknownRevision = errors.New("unknown remote revision")

var aliases = map[string]string{
	"a":       reva.Name,
	"reva":    reva.Name,
	"rev-a":   reva.Name,
	reva.Name: reva.Name,
	"b":       revb.Name,
	"revb":    revb.Name,
	"rev-b":   revb.Name,
	revb.Name: revb.Name,
}

var tables = map[string]func() *ircode.Table{
	reva.Name: reva.Table,
	revb.Name: revb.Table,
}

// Names returns the canonical revision names in order.
func Names() []string {
	return []string{reva.Name, revb.Name}
}

// Canonical maps any accepted spelling of a revision to its canonical name.
func Canonical(name string) (string, error) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRevision, name)
	}
	return canonical, nil
}

// Get returns the table for the named revision.
func Get(name string) (*ircode.Table, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	return tables[canonical](), nil
}

// All returns every table in Names order.
func All() []*ircode.Table {
	out := make([]*ircode.Table, 0, len(tables))
	for _, name := range Names() {
		out = append(out, tables[name]())
	}
	return out
}
