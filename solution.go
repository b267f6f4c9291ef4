package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// solutionProjectRe matches the project records of a solution file:
//
//	Project("{TYPE-GUID}") = "Name", "rel\path\App.vcxproj", "{PROJECT-GUID}"
//
// Records whose second value is not a project file path (solution folders,
// installers) fall out because the extension is part of the match.
var solutionProjectRe = regexp.MustCompile(`(?i)^Project\("\{[^}]*\}"\)\s*=\s*"[^"]*"\s*,\s*"([^"]+\` + projectExt + `)"`)

// SolutionProjects returns the absolute paths of the project files a
// solution references. Paths are stored Windows-style relative to the
// solution directory; referenced files missing from disk are skipped rather
// than treated as an error.
func SolutionProjects(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	slnDir := filepath.Dir(path)
	var projects []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m := solutionProjectRe.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		rel := filepath.FromSlash(strings.ReplaceAll(m[1], `\`, "/"))
		p := rel
		if !filepath.IsAbs(p) {
			p = filepath.Join(slnDir, rel)
		}
		p = filepath.Clean(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		projects = append(projects, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return projects, nil
}
