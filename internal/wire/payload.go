package wire

// Field is one text entry of an outbound multipart payload. Fields are kept
// as an ordered slice rather than a map because the upstream parser
// reconstructs lists from the indexed names, and the body should be written
// in the same order the entity holds them.
type Field struct {
	Name  string
	Value string
}

// FileUpload is the optional binary part of a payload.
type FileUpload struct {
	FieldName string
	Filename  string
	Content   []byte
}

// Payload is the canonical outbound form of an entity: flat text fields plus
// at most one file. The file part is absent (nil) when the caller wants the
// upstream service to keep its stored image.
type Payload struct {
	Fields []Field
	Image  *FileUpload
}

// Append adds one text field preserving order.
func (p *Payload) Append(name, value string) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

// Get returns the first field with the given name, for tests and debugging.
func (p *Payload) Get(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
