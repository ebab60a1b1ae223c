package deviceatlas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/dmitrymomot/deviceatlas/pkg/devicetree"
)

// Dataset keys of the persisted JSON form.
const (
	keyProperties = "p" // list of type-tagged property definitions
	keyTree       = "t" // root node
	keyData       = "d" // node properties: id -> raw value
	keyMask       = "m" // node mask: property ids open for override
	keyChildren   = "c" // node children: literal key -> node
)

// LoadFile reads and parses the dataset at path.
func LoadFile(path string, opts ...Option) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return LoadBytes(data, opts...)
}

// Load reads the whole dataset from r and parses it.
func Load(r io.Reader, opts ...Option) (*Atlas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return LoadBytes(data, opts...)
}

// LoadBytes parses an in-memory dataset.
func LoadBytes(data []byte, opts ...Option) (*Atlas, error) {
	tree, table, err := ParseDataset(data)
	if err != nil {
		return nil, err
	}
	return newAtlas(tree, table, false, opts...)
}

// ParseDataset decodes the JSON dataset straight into a device tree and its
// property table. Every property id and raw value in the tree is checked
// against the table, so a dataset that parses cleanly cannot fail lookups.
func ParseDataset(data []byte) (*devicetree.Tree, *PropertyTable, error) {
	table, err := parsePropertyTable(data)
	if err != nil {
		return nil, nil, err
	}

	raw, typ, _, err := jsonparser.Get(data, keyTree)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidDataset, fmt.Errorf("missing %q: %w", keyTree, err))
	}
	if typ != jsonparser.Object {
		return nil, nil, errors.Join(ErrInvalidDataset, fmt.Errorf("%q must be an object, got %s", keyTree, typ))
	}

	p := &nodeParser{table: table}
	root, err := p.parse(raw, "")
	if err != nil {
		return nil, nil, err
	}
	return devicetree.NewTree(root), table, nil
}

func parsePropertyTable(data []byte) (*PropertyTable, error) {
	var (
		props   []Property
		itemErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if itemErr != nil {
			return
		}
		if dataType != jsonparser.String {
			itemErr = errors.Join(ErrInvalidDataset, fmt.Errorf("property %d: definition must be a string", len(props)))
			return
		}
		def, err := jsonparser.ParseString(value)
		if err != nil {
			itemErr = errors.Join(ErrInvalidDataset, fmt.Errorf("property %d: %w", len(props), err))
			return
		}
		prop, err := ParsePropertyDefinition(len(props), def)
		if err != nil {
			itemErr = err
			return
		}
		props = append(props, prop)
	}, keyProperties)
	if err != nil {
		return nil, errors.Join(ErrInvalidDataset, fmt.Errorf("property list %q: %w", keyProperties, err))
	}
	if itemErr != nil {
		return nil, itemErr
	}
	return NewPropertyTable(props)
}

type nodeParser struct {
	table *PropertyTable
}

// parse decodes the node object raw reached through path.
func (p *nodeParser) parse(raw []byte, path string) (*devicetree.Node, error) {
	var (
		props    map[int]string
		mask     []int
		children map[string]*devicetree.Node
	)

	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		var err error
		switch string(key) {
		case keyData:
			props, err = p.parseProperties(value, dataType, path)
		case keyMask:
			mask, err = p.parseMask(value, dataType, path)
		case keyChildren:
			children, err = p.parseChildren(value, dataType, path)
		}
		return err
	})
	if err != nil {
		var dsErr datasetError
		if errors.As(err, &dsErr) {
			return nil, dsErr.err
		}
		return nil, errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: %w", path, err))
	}

	return devicetree.NewNode(props, mask, children), nil
}

func (p *nodeParser) parseProperties(value []byte, dataType jsonparser.ValueType, path string) (map[int]string, error) {
	props := make(map[int]string)

	add := func(id int, raw []byte, typ jsonparser.ValueType) error {
		v, err := scalar(raw, typ)
		if err != nil {
			return p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q property %d: %w", path, id, err)))
		}
		if _, err := p.table.Coerce(id, v); err != nil {
			return p.fail(fmt.Errorf("node %q: %w", path, err))
		}
		props[id] = v
		return nil
	}

	switch dataType {
	case jsonparser.Object:
		err := jsonparser.ObjectEach(value, func(key, raw []byte, typ jsonparser.ValueType, _ int) error {
			id, err := strconv.Atoi(string(key))
			if err != nil {
				return p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: property key %q is not an id", path, key)))
			}
			return add(id, raw, typ)
		})
		if err != nil {
			return nil, err
		}
	case jsonparser.Array:
		var itemErr error
		id := 0
		_, err := jsonparser.ArrayEach(value, func(raw []byte, typ jsonparser.ValueType, _ int, _ error) {
			defer func() { id++ }()
			if itemErr != nil || typ == jsonparser.Null {
				return
			}
			itemErr = add(id, raw, typ)
		})
		if itemErr != nil {
			return nil, itemErr
		}
		if err != nil {
			return nil, p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q properties: %w", path, err)))
		}
	default:
		return nil, p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: %q must be an object or array, got %s", path, keyData, dataType)))
	}

	return props, nil
}

func (p *nodeParser) parseMask(value []byte, dataType jsonparser.ValueType, path string) ([]int, error) {
	mask := []int{}

	addID := func(s string) error {
		id, err := strconv.Atoi(s)
		if err != nil {
			return p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: mask entry %q is not an id", path, s)))
		}
		if _, ok := p.table.ByID(id); !ok {
			return p.fail(errors.Join(ErrUnknownPropertyID, fmt.Errorf("node %q: mask id %d", path, id)))
		}
		mask = append(mask, id)
		return nil
	}

	switch dataType {
	case jsonparser.Array:
		var itemErr error
		_, err := jsonparser.ArrayEach(value, func(raw []byte, typ jsonparser.ValueType, _ int, _ error) {
			if itemErr != nil {
				return
			}
			s, err := scalar(raw, typ)
			if err != nil {
				itemErr = p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q mask: %w", path, err)))
				return
			}
			itemErr = addID(s)
		})
		if itemErr != nil {
			return nil, itemErr
		}
		if err != nil {
			return nil, p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q mask: %w", path, err)))
		}
	case jsonparser.Object:
		err := jsonparser.ObjectEach(value, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
			return addID(string(key))
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: %q must be an array or object, got %s", path, keyMask, dataType)))
	}

	return mask, nil
}

func (p *nodeParser) parseChildren(value []byte, dataType jsonparser.ValueType, path string) (map[string]*devicetree.Node, error) {
	if dataType != jsonparser.Object {
		return nil, p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: %q must be an object, got %s", path, keyChildren, dataType)))
	}

	children := make(map[string]*devicetree.Node)
	err := jsonparser.ObjectEach(value, func(key, raw []byte, typ jsonparser.ValueType, _ int) error {
		k := string(key)
		if k == "" {
			return p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: empty child key", path)))
		}
		if typ != jsonparser.Object {
			return p.fail(errors.Join(ErrInvalidDataset, fmt.Errorf("node %q: child must be an object, got %s", path+k, typ)))
		}
		child, err := p.parse(raw, path+k)
		if err != nil {
			return datasetError{err: err}
		}
		children[k] = child
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

// fail marks err as final so enclosing ObjectEach callbacks pass it through
// without wrapping it again.
func (p *nodeParser) fail(err error) error { return datasetError{err: err} }

type datasetError struct{ err error }

func (e datasetError) Error() string { return e.err.Error() }
func (e datasetError) Unwrap() error { return e.err }

// scalar returns the textual form of a JSON string, number or boolean.
func scalar(raw []byte, typ jsonparser.ValueType) (string, error) {
	switch typ {
	case jsonparser.String:
		return jsonparser.ParseString(raw)
	case jsonparser.Number, jsonparser.Boolean:
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported value type %s", typ)
	}
}
