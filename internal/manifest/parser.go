package manifest

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Parse loads a manifest from disk, decodes it, and validates it,
// reporting line-numbered parse failures (spec §6 "Configuration
// source").
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nxerrors.NewParseError(path, 0, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes decodes and validates manifest YAML already read into
// memory, tagging errors with path for diagnostics.
func ParseBytes(path string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nxerrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
