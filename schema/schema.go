package schema

import "encoding/json"

// Schema is the content contract for everything that travels between the
// router, the prompt builders and the generation collaborator.
type Schema interface {
	String() string
}

// Stringify renders schema content for the wire: plain strings pass through,
// structured content is JSON encoded.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}
