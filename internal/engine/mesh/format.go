package mesh

import (
	"fmt"
	"strings"

	"github.com/Faultbox/gsexplode/internal/engine/gfx"
)

// Attribute tags understood in a format descriptor.
const (
	TagPosition = 'V'
	TagNormal   = 'N'
	TagTexCoord = 'T'
)

var attribLocations = map[byte]uint32{
	TagPosition: 0,
	TagNormal:   1,
	TagTexCoord: 2,
}

// FormatError reports an unusable vertex format descriptor.
type FormatError struct {
	Descriptor string
	Token      string
	Reason     string
}

func (e *FormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("vertex format %q: %s", e.Descriptor, e.Reason)
	}
	return fmt.Sprintf("vertex format %q: token %q: %s", e.Descriptor, e.Token, e.Reason)
}

// Attribute is one interleaved component of a vertex.
type Attribute struct {
	Tag      byte
	Width    int // floats
	Offset   int // floats from the start of the vertex
	Location uint32
}

// Format is a parsed descriptor such as "T2F_N3F_V3F".
type Format struct {
	Descriptor string
	Attributes []Attribute // descriptor order
	Stride     int         // floats per vertex
}

// ParseFormat parses an underscore-separated descriptor. Each token is a tag
// letter, a width digit from 1 to 4, and an optional F type suffix.
func ParseFormat(desc string) (Format, error) {
	f := Format{Descriptor: desc}
	if strings.TrimSpace(desc) == "" {
		return Format{}, &FormatError{Descriptor: desc, Reason: "empty descriptor"}
	}

	seen := map[byte]bool{}
	for _, tok := range strings.Split(desc, "_") {
		if len(tok) < 2 || len(tok) > 3 {
			return Format{}, &FormatError{Descriptor: desc, Token: tok, Reason: "expected tag, width and optional F"}
		}
		tag := tok[0]
		loc, ok := attribLocations[tag]
		if !ok {
			return Format{}, &FormatError{Descriptor: desc, Token: tok, Reason: "unknown attribute tag"}
		}
		if tok[1] < '1' || tok[1] > '4' {
			return Format{}, &FormatError{Descriptor: desc, Token: tok, Reason: "width must be 1-4"}
		}
		if len(tok) == 3 && tok[2] != 'F' {
			return Format{}, &FormatError{Descriptor: desc, Token: tok, Reason: "only float (F) components are supported"}
		}
		if seen[tag] {
			return Format{}, &FormatError{Descriptor: desc, Token: tok, Reason: "duplicate attribute"}
		}
		seen[tag] = true

		width := int(tok[1] - '0')
		f.Attributes = append(f.Attributes, Attribute{
			Tag:      tag,
			Width:    width,
			Offset:   f.Stride,
			Location: loc,
		})
		f.Stride += width
	}
	return f, nil
}

// Attribute returns the attribute with the given tag.
func (f Format) Attribute(tag byte) (Attribute, bool) {
	for _, a := range f.Attributes {
		if a.Tag == tag {
			return a, true
		}
	}
	return Attribute{}, false
}

// Attribs converts the layout for gfx.Context.CreateVertexArray.
func (f Format) Attribs() []gfx.Attrib {
	out := make([]gfx.Attrib, len(f.Attributes))
	for i, a := range f.Attributes {
		out[i] = gfx.Attrib{Location: a.Location, Size: int32(a.Width), Offset: a.Offset}
	}
	return out
}

func (f Format) String() string { return f.Descriptor }
