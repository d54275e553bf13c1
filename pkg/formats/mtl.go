package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Material is one newmtl block of an MTL library.
type Material struct {
	Name      string
	Ambient   [3]float32 // Ka
	Diffuse   [3]float32 // Kd
	Specular  [3]float32 // Ks
	Shininess float32    // Ns
	Opacity   float32    // d, or 1-Tr
	Illum     int

	// DiffuseMap is the map_Kd path as written in the file. Options such as
	// "-s 1 1 1" are stripped.
	DiffuseMap string
}

// DefaultMaterial is used for faces whose material is missing.
var DefaultMaterial = Material{
	Ambient:   [3]float32{0.2, 0.2, 0.2},
	Diffuse:   [3]float32{0.8, 0.8, 0.8},
	Specular:  [3]float32{0.5, 0.5, 0.5},
	Shininess: 32,
	Opacity:   1,
}

// MTL is a decoded material library.
type MTL struct {
	Materials map[string]*Material
	Order     []string // material names in declaration order
	Warnings  []string
}

// Lookup returns the named material, or DefaultMaterial with ok=false.
func (m *MTL) Lookup(name string) (Material, bool) {
	if m != nil {
		if mat, ok := m.Materials[name]; ok {
			return *mat, true
		}
	}
	d := DefaultMaterial
	d.Name = name
	return d, false
}

func (m *MTL) merge(other *MTL) {
	for _, name := range other.Order {
		if _, dup := m.Materials[name]; !dup {
			m.Order = append(m.Order, name)
		}
		m.Materials[name] = other.Materials[name]
	}
	m.Warnings = append(m.Warnings, other.Warnings...)
}

// ParseMTL parses MTL data from a byte slice.
func ParseMTL(data []byte) (*MTL, error) {
	mtl := &MTL{Materials: make(map[string]*Material)}
	var cur *Material
	warned := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		key := fields[0]
		if key == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: newmtl without a name", line, ErrMalformedOBJ)
			}
			m := DefaultMaterial
			m.Name = strings.Join(fields[1:], " ")
			cur = &m
			if _, dup := mtl.Materials[m.Name]; !dup {
				mtl.Order = append(mtl.Order, m.Name)
			}
			mtl.Materials[m.Name] = cur
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: %w: %s before newmtl", line, ErrMalformedOBJ, key)
		}

		var err error
		switch strings.ToLower(key) {
		case "ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "kd":
			cur.Diffuse, err = parseColor(fields[1:])
		case "ks":
			cur.Specular, err = parseColor(fields[1:])
		case "ns":
			cur.Shininess, err = parseScalar(fields[1:])
		case "d":
			cur.Opacity, err = parseScalar(fields[1:])
		case "tr":
			var tr float32
			tr, err = parseScalar(fields[1:])
			cur.Opacity = 1 - tr
		case "illum":
			if len(fields) > 1 {
				cur.Illum, err = strconv.Atoi(fields[1])
			}
		case "map_kd":
			if len(fields) < 2 {
				err = fmt.Errorf("%w: map_Kd without a path", ErrMalformedOBJ)
				break
			}
			// Options precede the path, which is the last field.
			cur.DiffuseMap = fields[len(fields)-1]
		default:
			if !warned[key] {
				warned[key] = true
				mtl.Warnings = append(mtl.Warnings, fmt.Sprintf("line %d: unsupported statement %q ignored", line, key))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}

	return mtl, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	mtl, err := ParseMTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return mtl, nil
}

func parseColor(fields []string) ([3]float32, error) {
	// "Kd 0.5" is shorthand for a grey.
	if len(fields) == 1 {
		f, err := parseFloats(fields, 1)
		if err != nil {
			return [3]float32{}, err
		}
		return [3]float32{f[0], f[0], f[0]}, nil
	}
	f, err := parseFloats(fields, 3)
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{f[0], f[1], f[2]}, nil
}

func parseScalar(fields []string) (float32, error) {
	f, err := parseFloats(fields, 1)
	if err != nil {
		return 0, err
	}
	return f[0], nil
}
