package json

import "bytes"

// Object represents the encoding of a JSON object.
type Object struct {
	w       *bytes.Buffer
	scratch *[]byte

	wroteMember bool
}

func newObject(w *bytes.Buffer, scratch *[]byte) *Object {
	w.WriteByte('{')
	return &Object{w: w, scratch: scratch}
}

// Key returns a Value encoder for the named member.
func (o *Object) Key(name string) Value {
	if o.wroteMember {
		o.w.WriteByte(',')
	}
	o.wroteMember = true

	escapeString(o.w, name)
	o.w.WriteByte(':')

	return newValue(o.w, o.scratch)
}

// Close closes the object.
func (o *Object) Close() {
	o.w.WriteByte('}')
}
