package deviceatlas

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/deviceatlas/pkg/devicetree"
	"github.com/dmitrymomot/deviceatlas/pkg/logger"
)

// Option configures an Atlas.
type Option func(*Atlas)

// WithLogger sets the logger used for dataset diagnostics.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *Atlas) {
		if l != nil {
			a.log = l
		}
	}
}

// Atlas identifies devices from User-Agent strings using a loaded dataset.
// It is safe for concurrent use.
type Atlas struct {
	tree  *devicetree.Tree
	table *PropertyTable
	log   *slog.Logger
}

// New creates an Atlas over an already built tree and property table.
// Every property id and value in the tree must be known to the table;
// an inconsistent pair indicates a corrupt dataset and is rejected.
func New(tree *devicetree.Tree, table *PropertyTable, opts ...Option) (*Atlas, error) {
	return newAtlas(tree, table, true, opts...)
}

// newAtlas builds the engine. validate is false when the tree comes from
// ParseDataset, which already checked every id and value.
func newAtlas(tree *devicetree.Tree, table *PropertyTable, validate bool, opts ...Option) (*Atlas, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if table == nil {
		return nil, errors.Join(ErrInvalidDataset, errors.New("nil property table"))
	}

	a := &Atlas{
		tree:  tree,
		table: table,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	if validate {
		if err := a.validate(); err != nil {
			return nil, err
		}
	}

	stats := tree.Stats()
	a.log.Info("device dataset loaded",
		logger.Component("deviceatlas"),
		logger.Count("properties", table.Len()),
		logger.Count("nodes", stats.Nodes),
		logger.Count("assignments", stats.Assignments),
		logger.Count("masked_nodes", stats.MaskedNodes),
		logger.Count("max_depth", stats.MaxDepth),
	)

	return a, nil
}

func (a *Atlas) validate() error {
	return a.tree.Walk(func(path string, _ int, n *devicetree.Node) error {
		var err error
		n.RangeProperties(func(id int, raw string) bool {
			if _, err = a.table.Coerce(id, raw); err != nil {
				err = fmt.Errorf("node %q: %w", path, err)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		for _, id := range n.Mask() {
			if _, ok := a.table.ByID(id); !ok {
				return errors.Join(ErrUnknownPropertyID, fmt.Errorf("node %q: mask id %d", path, id))
			}
		}
		return nil
	})
}

// Tree returns the dataset tree.
func (a *Atlas) Tree() *devicetree.Tree { return a.tree }

// Table returns the dataset property table.
func (a *Atlas) Table() *PropertyTable { return a.table }

// Lookup resolves every property for ua and returns raw ids and values.
// ua is trimmed of surrounding whitespace first.
func (a *Atlas) Lookup(ua string) devicetree.Match {
	return devicetree.Resolve(a.tree.Root(), strings.TrimSpace(ua))
}

// Device resolves every property the dataset assigns to ua.
func (a *Atlas) Device(ua string) Device {
	ua = strings.TrimSpace(ua)
	return a.materialize(ua, devicetree.Resolve(a.tree.Root(), ua))
}

// Properties resolves only the named properties for ua. The walk stops as
// soon as all of them are settled. An unknown name is an error. Without
// names it behaves like Device.
func (a *Atlas) Properties(ua string, names ...string) (Device, error) {
	if len(names) == 0 {
		return a.Device(ua), nil
	}
	ids := make([]int, 0, len(names))
	for _, name := range names {
		p, ok := a.table.ByName(name)
		if !ok {
			return nil, errors.Join(ErrUnknownProperty, fmt.Errorf("%q", name))
		}
		ids = append(ids, p.ID)
	}

	ua = strings.TrimSpace(ua)
	return a.materialize(ua, devicetree.ResolveSought(a.tree.Root(), ua, ids)), nil
}

// materialize converts a raw match into named, typed properties.
// Consistency was checked at construction, so coercion cannot fail here.
func (a *Atlas) materialize(ua string, m devicetree.Match) Device {
	d := make(Device, len(m.Properties)+2)
	for id, raw := range m.Properties {
		p, _ := a.table.ByID(id)
		v, err := p.Coerce(raw)
		if err != nil {
			panic(fmt.Sprintf("deviceatlas: dataset changed after validation: %v", err))
		}
		d[p.Name] = v
	}
	d[MatchedKey] = m.Matched(ua)
	d[UnmatchedKey] = m.Unmatched(ua)
	return d
}
