package formats

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// Material holds the subset of an MTL document the viewer uses.
type Material struct {
	// DiffuseMap is the filename from the first map_Kd directive,
	// relative to the material document. Empty when absent.
	DiffuseMap string
}

// ParseMTL extracts the diffuse texture reference from an MTL material
// document. Only the first map_Kd wins; later materials in a
// multi-material document are ignored since the viewer renders exactly
// one diffuse texture.
func ParseMTL(data []byte) Material {
	var mat Material

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != "map_Kd" || len(fields) < 2 {
			continue
		}

		if name := stripMapOptions(fields[1:]); name != "" {
			mat.DiffuseMap = name
			return mat
		}
	}

	return mat
}

// stripMapOptions drops leading option flags (-o, -s, -mm, -blendu, ...)
// and their numeric or on/off arguments from a map_Kd value, returning
// the remaining filename. Best effort: an option with no recognizable
// arguments simply stops consuming.
func stripMapOptions(fields []string) string {
	i := 0
	for i < len(fields) && strings.HasPrefix(fields[i], "-") {
		i++
		for i < len(fields) && isOptionArg(fields[i]) {
			i++
		}
	}
	return strings.Join(fields[i:], " ")
}

func isOptionArg(s string) bool {
	if s == "on" || s == "off" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
