package deviceatlas

// Keys synthesized into every Device next to the dataset properties.
const (
	MatchedKey   = "_matched"
	UnmatchedKey = "_unmatched"
)

// Device is the resolved property set of a User-Agent, keyed by property
// name. Values are typed according to the dataset: string, bool or int.
// Properties that were not resolved are absent.
type Device map[string]any

// Get returns the value of name, or nil if it was not resolved.
func (d Device) Get(name string) any {
	return d[name]
}

// Has reports whether name was resolved.
func (d Device) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// String returns the string value of name.
func (d Device) String(name string) (string, bool) {
	v, ok := d[name].(string)
	return v, ok
}

// Bool returns the boolean value of name.
func (d Device) Bool(name string) (bool, bool) {
	v, ok := d[name].(bool)
	return v, ok
}

// Int returns the integer value of name.
func (d Device) Int(name string) (int, bool) {
	v, ok := d[name].(int)
	return v, ok
}

// Matched returns the part of the User-Agent consumed by the dataset tree.
func (d Device) Matched() string {
	v, _ := d[MatchedKey].(string)
	return v
}

// Unmatched returns the rest of the User-Agent after the matched prefix.
func (d Device) Unmatched() string {
	v, _ := d[UnmatchedKey].(string)
	return v
}

// Properties returns the resolved dataset properties without the
// synthesized match fields.
func (d Device) Properties() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		if k == MatchedKey || k == UnmatchedKey {
			continue
		}
		out[k] = v
	}
	return out
}
