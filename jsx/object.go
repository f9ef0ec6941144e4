package jsx

// Object is an ordered string-keyed mapping used for object-valued
// attributes, most notably the style attribute. Keys keep their first
// insertion position; setting an existing key updates the value in place.
type Object struct {
	keys []string
	m    map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: make(map[string]any)}
}

// Set stores the value under key, preserving the key's original position if
// it already exists.
func (o *Object) Set(key string, val any) {
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = val
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.m[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (o *Object) GetString(key string) string {
	if s, ok := o.m[key].(string); ok {
		return s
	}
	return ""
}

// Delete removes key from the object.
func (o *Object) Delete(key string) {
	if _, ok := o.m[key]; !ok {
		return
	}
	delete(o.m, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Clone returns a shallow copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	c := &Object{
		keys: make([]string, len(o.keys)),
		m:    make(map[string]any, len(o.m)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.m {
		c.m[k] = v
	}
	return c
}
