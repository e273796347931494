package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// InputType tags the kind of input a feature or cache operates on.
// Tags form a hierarchy expressed as slash separated paths, e.g. "input/object".
type InputType string

const (
	// TypeInput is the root of the hierarchy; features declaring it accept every input.
	TypeInput InputType = "input"
	// TypeObject identifies a single object mask.
	TypeObject InputType = "input/object"
	// TypeCollection identifies a collection of object masks.
	TypeCollection InputType = "input/collection"
)

var knownInputTypes = []InputType{TypeInput, TypeObject, TypeCollection}

// Input is implemented by every value a feature can be calculated on.
type Input interface {
	InputType() InputType
}

// Accepts reports whether a feature declaring t can be calculated on inputs of type u.
// That is the case when u equals t or descends from it.
func (t InputType) Accepts(u InputType) bool {
	if t == u {
		return true
	}
	return strings.HasPrefix(string(u), string(t)+"/")
}

// String returns the tag.
func (t InputType) String() string {
	return string(t)
}

// Short returns the last path segment, e.g. "object" for "input/object".
func (t InputType) Short() string {
	s := string(t)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ParseInputType resolves a tag in either its full ("input/object") or short ("object") form.
// An empty string yields TypeInput.
func ParseInputType(s string) (InputType, error) {
	if s == "" {
		return TypeInput, nil
	}
	for _, t := range knownInputTypes {
		if string(t) == s || t.Short() == s {
			return t, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownInputType, "failed to parse input type"), "input_type", s)
}
