package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	solutionExt = ".sln"
	projectExt  = ".vcxproj"
)

// ErrNoProjects means the walk finished without finding a single project
// file. Solutions alone cannot drive the workflow, so callers halt on this
// before any parsing or prompting happens. A tree without solutions is fine.
var ErrNoProjects = errors.New("no project files found")

var ignoreDirs = func() map[string]struct{} {
	dirs := []string{
		"node_modules", "bower_components", "dist", "build", ".next",
		"bin", "obj", "packages", ".nuget",
		".git", ".hg", ".svn", ".gitlab", ".github",
		".vs", ".idea", ".vscode",
		".venv", "venv", "env",
		".gradle", "target",
		".cache", "tmp", "temp", "vendor", "coverage",
		"out",
	}
	m := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		m[d] = struct{}{}
	}
	return m
}()

func isIgnoredDir(name string) bool {
	_, ok := ignoreDirs[strings.ToLower(name)]
	return ok
}

// BuildTree holds every build description file found under Root. Paths are
// absolute; their order is whatever the directory walk yielded.
type BuildTree struct {
	Root      string
	Solutions []string
	Projects  []string
}

func walkBuildFiles(rootDir string) (*BuildTree, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", rootDir, err)
	}

	tree := &BuildTree{Root: root}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && isIgnoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case solutionExt:
			tree.Solutions = append(tree.Solutions, path)
		case projectExt:
			tree.Projects = append(tree.Projects, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return tree, nil
}

// FindSolutionFiles walks rootDir and returns all solution file paths,
// skipping common build-output and metadata directories.
func FindSolutionFiles(rootDir string) ([]string, error) {
	tree, err := walkBuildFiles(rootDir)
	if err != nil {
		return nil, err
	}
	return tree.Solutions, nil
}

// FindProjectFiles walks rootDir and returns all project file paths,
// skipping common build-output and metadata directories.
func FindProjectFiles(rootDir string) ([]string, error) {
	tree, err := walkBuildFiles(rootDir)
	if err != nil {
		return nil, err
	}
	return tree.Projects, nil
}

// DiscoverBuildFiles walks rootDir once and returns the full build tree.
// Returns ErrNoProjects when no project files exist so the caller can stop
// before starting a selection workflow.
func DiscoverBuildFiles(rootDir string) (*BuildTree, error) {
	tree, err := walkBuildFiles(rootDir)
	if err != nil {
		return nil, err
	}
	if len(tree.Projects) == 0 {
		return nil, ErrNoProjects
	}
	return tree, nil
}
