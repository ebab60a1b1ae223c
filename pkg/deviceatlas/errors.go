package deviceatlas

import "errors"

var (
	ErrInvalidDataset       = errors.New("invalid device dataset")
	ErrUnknownPropertyType  = errors.New("unknown property type")
	ErrUnknownPropertyID    = errors.New("unknown property id")
	ErrInvalidPropertyValue = errors.New("invalid property value")
	ErrUnknownProperty      = errors.New("unknown property name")
	ErrDuplicateProperty    = errors.New("duplicate property name")
	ErrNilTree              = errors.New("nil device tree")
)
