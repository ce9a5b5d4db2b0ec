package httpwire

import "strings"

// FormField is one decoded form value: either a plain scalar or an
// uploaded file part carrying a filename and declared media type.
type FormField struct {
	Name      string
	Filename  string // empty for plain scalar fields
	MediaType string // empty when the part declared none
	Data      []byte
}

// Value returns the field data as a string, for scalar fields.
func (f FormField) Value() string {
	return string(f.Data)
}

// IsFile reports whether the field arrived as an uploaded file part.
func (f FormField) IsFile() bool {
	return f.Filename != ""
}

// Form maps field names to their decoded values. Names that arrived
// with the "[]" suffix keep every value in order; plain names keep only
// the last.
type Form map[string][]FormField

// Get returns the single value for name. For accumulated "[]" fields it
// returns the first.
func (f Form) Get(name string) (FormField, bool) {
	if vs := f[name]; len(vs) > 0 {
		return vs[0], true
	}
	return FormField{}, false
}

// All returns every value recorded for name, in order.
func (f Form) All(name string) []FormField {
	return f[name]
}

// add records a field under rawName, applying the "[]" accumulation
// convention. The stored field's Name has the suffix stripped.
func (f Form) add(rawName string, field FormField) {
	name, isList := strings.CutSuffix(rawName, "[]")
	field.Name = name
	if isList {
		f[name] = append(f[name], field)
	} else {
		f[name] = []FormField{field}
	}
}

// formFromParams lifts urlencoded parameters into form fields. The "[]"
// convention was already applied while parsing the parameters.
func formFromParams(p Params) Form {
	f := Form{}
	for name, values := range p {
		for _, v := range values {
			f[name] = append(f[name], FormField{Name: name, Data: []byte(v)})
		}
	}
	return f
}
