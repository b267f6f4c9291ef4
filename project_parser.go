package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ParseResult holds the platform and configuration axes a single project
// file declares. Both lists are deduplicated and lexicographically sorted.
// Empty lists are a valid result, not an error.
type ParseResult struct {
	Platforms      []string
	Configurations []string
}

// The three recognized configuration-bearing containers. The parser is a
// line matcher, not an XML parser: markers are matched per line and a single
// boolean tracks whether the scan is inside any such container.
var (
	configGroupOpenRe   = regexp.MustCompile(`<PropertyGroup[^>]*Label="Configuration"`)
	itemDefGroupOpenRe  = regexp.MustCompile(`<ItemDefinitionGroup[^>]*Condition=`)
	projectConfigOpenRe = regexp.MustCompile(`<ProjectConfiguration\b`)
)

var (
	platformValueRe = regexp.MustCompile(`<Platform>([^<]+)</Platform>`)
	configValueRe   = regexp.MustCompile(`<Configuration>([^<]+)</Configuration>`)
)

func isSectionOpen(line string) bool {
	return configGroupOpenRe.MatchString(line) ||
		itemDefGroupOpenRe.MatchString(line) ||
		projectConfigOpenRe.MatchString(line)
}

func isSectionClose(line string) bool {
	return strings.Contains(line, "</PropertyGroup>") ||
		strings.Contains(line, "</ItemDefinitionGroup>") ||
		strings.Contains(line, "</ProjectConfiguration>")
}

// ParseProjectFile scans a project file line by line and extracts the
// distinct platform and configuration names declared inside recognized
// containers. On any I/O failure the result is empty and the error is
// returned; the function never panics.
func ParseProjectFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return &ParseResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result := &ParseResult{}
	inConfigGroup := false
	seenPlatforms := make(map[string]struct{})
	seenConfigs := make(map[string]struct{})

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()

		// Both marker checks run on every line, close after open: a line
		// that opens and closes a container leaves capture off, and its
		// inline tags are not taken.
		if isSectionOpen(line) {
			inConfigGroup = true
		}
		if isSectionClose(line) {
			inConfigGroup = false
		}
		if !inConfigGroup {
			continue
		}

		if m := platformValueRe.FindStringSubmatch(line); m != nil {
			if _, seen := seenPlatforms[m[1]]; !seen {
				seenPlatforms[m[1]] = struct{}{}
				result.Platforms = append(result.Platforms, m[1])
			}
		}
		if m := configValueRe.FindStringSubmatch(line); m != nil {
			if _, seen := seenConfigs[m[1]]; !seen {
				seenConfigs[m[1]] = struct{}{}
				result.Configurations = append(result.Configurations, m[1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return &ParseResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	result.Platforms = dedupSorted(result.Platforms)
	result.Configurations = dedupSorted(result.Configurations)
	return result, nil
}

// dedupSorted sorts values in place and drops adjacent duplicates. The
// capture loop already guards on a seen-set; this second pass keeps the
// output well formed regardless.
func dedupSorted(values []string) []string {
	sort.Strings(values)
	out := values[:0] // reuse the backing array in-place
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
