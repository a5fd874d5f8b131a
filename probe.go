package jsbld

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Probe runs a short command synchronously in the project root and returns its
// stdout. It blocks for at most c.ProbeTimeout and is meant for detecting
// whether an external tool is installed before any task is registered.
func (c *Config) Probe(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.ProbeTimeout)
	defer cancel()

	stdout, _, err := c.Exec(ctx, c.RootPath, name, args...)
	if err != nil {
		return string(stdout), fmt.Errorf("probe %s: %w", name, err)
	}
	return string(stdout), nil
}

var moduleLine = regexp.MustCompile(`(\S+)@(\S+)`)

// ParseModuleList parses the output of "npm list --depth=0" into a map of
// module name to version. The first line names the project itself and is
// skipped, as are lines without a name@version pair.
func ParseModuleList(out string) map[string]string {
	modules := make(map[string]string)
	lines := strings.Split(out, "\n")
	for _, line := range lines[1:] {
		m := moduleLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		modules[m[1]] = m[2]
	}
	return modules
}
