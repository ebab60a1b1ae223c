package deviceatlas

import (
	"errors"
	"fmt"
	"strconv"
)

// PropertyType is the logical type of a dataset property.
type PropertyType string

const (
	PropertyTypeString  PropertyType = "string"
	PropertyTypeBoolean PropertyType = "boolean"
	PropertyTypeInteger PropertyType = "integer"
	// PropertyTypeDate values are kept as strings.
	PropertyTypeDate PropertyType = "date"
)

// propertyTypeTags maps the single-letter prefix used in dataset property
// definitions to a PropertyType.
var propertyTypeTags = map[byte]PropertyType{
	's': PropertyTypeString,
	'b': PropertyTypeBoolean,
	'i': PropertyTypeInteger,
	'd': PropertyTypeDate,
}

// Property describes one entry of the dataset's property list.
type Property struct {
	ID   int
	Name string
	Type PropertyType
}

// ParsePropertyDefinition parses a dataset definition such as "smodel" or
// "bisBrowser": the first byte is the type tag, the rest is the name.
func ParsePropertyDefinition(id int, def string) (Property, error) {
	if len(def) < 2 {
		return Property{}, errors.Join(ErrInvalidDataset, fmt.Errorf("property %d: definition %q too short", id, def))
	}
	typ, ok := propertyTypeTags[def[0]]
	if !ok {
		return Property{}, errors.Join(ErrUnknownPropertyType, fmt.Errorf("property %d: tag %q", id, def[0]))
	}
	return Property{ID: id, Name: def[1:], Type: typ}, nil
}

// PropertyTable maps dataset property ids to their names and types.
// It is immutable after construction.
type PropertyTable struct {
	byID   []Property
	byName map[string]int
}

// NewPropertyTable builds a table from properties indexed by position:
// props[i].ID must equal i. Names must be unique.
func NewPropertyTable(props []Property) (*PropertyTable, error) {
	t := &PropertyTable{
		byID:   make([]Property, len(props)),
		byName: make(map[string]int, len(props)),
	}
	for i, p := range props {
		if p.ID != i {
			return nil, errors.Join(ErrInvalidDataset, fmt.Errorf("property %q has id %d at position %d", p.Name, p.ID, i))
		}
		if _, dup := t.byName[p.Name]; dup {
			return nil, errors.Join(ErrDuplicateProperty, fmt.Errorf("property %q", p.Name))
		}
		t.byID[i] = p
		t.byName[p.Name] = i
	}
	return t, nil
}

// Len returns the number of properties in the table.
func (t *PropertyTable) Len() int { return len(t.byID) }

// ByID returns the property with the given id.
func (t *PropertyTable) ByID(id int) (Property, bool) {
	if id < 0 || id >= len(t.byID) {
		return Property{}, false
	}
	return t.byID[id], true
}

// ByName returns the property with the given name.
func (t *PropertyTable) ByName(name string) (Property, bool) {
	id, ok := t.byName[name]
	if !ok {
		return Property{}, false
	}
	return t.byID[id], true
}

// Properties returns all properties ordered by id.
func (t *PropertyTable) Properties() []Property {
	out := make([]Property, len(t.byID))
	copy(out, t.byID)
	return out
}

// Coerce converts a raw dataset value to the Go type of property id:
// string for string and date properties, bool for boolean, int for integer.
func (t *PropertyTable) Coerce(id int, raw string) (any, error) {
	p, ok := t.ByID(id)
	if !ok {
		return nil, errors.Join(ErrUnknownPropertyID, fmt.Errorf("id %d", id))
	}
	return p.Coerce(raw)
}

// Coerce converts raw to the Go type of the property.
func (p Property) Coerce(raw string) (any, error) {
	switch p.Type {
	case PropertyTypeBoolean:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Join(ErrInvalidPropertyValue, fmt.Errorf("%s: %q is not a boolean", p.Name, raw))
		}
		return v, nil
	case PropertyTypeInteger:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Join(ErrInvalidPropertyValue, fmt.Errorf("%s: %q is not an integer", p.Name, raw))
		}
		return v, nil
	default:
		return raw, nil
	}
}
