package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMTL reports unparsable material library data.
var ErrMalformedMTL = errors.New("malformed MTL data")

// MTLMaterial holds the Phong terms of one material.
type MTLMaterial struct {
	Name      string
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// DefaultMaterial returns the values used for faces whose material is not declared.
func DefaultMaterial(name string) MTLMaterial {
	return MTLMaterial{
		Name:     name,
		Ambient:  [3]float32{0.2, 0.2, 0.2},
		Diffuse:  [3]float32{0.8, 0.8, 0.8},
		Specular: [3]float32{0, 0, 0},
	}
}

// ParseMTL parses a material library, keeping declaration order.
// Statements other than newmtl, Ka, Kd, Ks and Ns are ignored.
func ParseMTL(data []byte) ([]MTLMaterial, error) {
	var (
		mats    []MTLMaterial
		current *MTLMaterial
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: newmtl without a name", ErrMalformedMTL, line)
			}
			mats = append(mats, DefaultMaterial(strings.Join(fields[1:], " ")))
			current = &mats[len(mats)-1]
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks", "Ns":
		default:
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w: line %d: %s before newmtl", ErrMalformedMTL, line, fields[0])
		}

		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedMTL, line, err)
		}
		switch fields[0] {
		case "Ka":
			current.Ambient = color(v)
		case "Kd":
			current.Diffuse = color(v)
		case "Ks":
			current.Specular = color(v)
		case "Ns":
			current.Shininess = v[0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return mats, nil
}

// color reads an RGB triple; a single value applies to all channels.
func color(v []float32) [3]float32 {
	if len(v) < 3 {
		return [3]float32{v[0], v[0], v[0]}
	}
	return [3]float32{v[0], v[1], v[2]}
}
