package main

import (
	"fmt"
	"slices"

	"vcpick/logger"
)

type StepKind int

const (
	StepSolution StepKind = iota
	StepProject
	StepPlatform
	StepConfiguration
)

func (k StepKind) String() string {
	switch k {
	case StepSolution:
		return "solution"
	case StepProject:
		return "project"
	case StepPlatform:
		return "platform"
	case StepConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

type WizardState int

const (
	WizardActive WizardState = iota
	WizardComplete
	WizardCanceled
)

// Prompt is one request in the selection sequence: the host shows Options
// and answers with Choose.
type Prompt struct {
	Step    StepKind
	Title   string
	Options []string
}

// Wizard drives the selection sequence over a discovered build tree as a
// series of synchronous request/response steps: solution, project, platform,
// configuration. Steps with nothing to choose are skipped, and Cancel
// short-circuits the remainder. The wizard performs no I/O of its own beyond
// reading the chosen files — the host owns all prompting.
type Wizard struct {
	session  *Session
	tree     *BuildTree
	parse    func(string) (*ParseResult, error)
	state    WizardState
	step     StepKind
	projects []string
}

func NewWizard(tree *BuildTree) *Wizard {
	w := &Wizard{
		session:  &Session{Root: tree.Root},
		tree:     tree,
		parse:    ParseProjectFile,
		state:    WizardActive,
		step:     StepSolution,
		projects: tree.Projects,
	}
	w.advance()
	return w
}

func (w *Wizard) State() WizardState { return w.state }

// Session returns the selection state. It is the caller's to read; after the
// wizard completes or is canceled nothing mutates it further.
func (w *Wizard) Session() *Session { return w.session }

// Next returns the current prompt, or nil once the wizard is complete or
// canceled.
func (w *Wizard) Next() *Prompt {
	if w.state != WizardActive {
		return nil
	}
	return &Prompt{
		Step:    w.step,
		Title:   fmt.Sprintf("Select %s", w.step),
		Options: slices.Clone(w.options()),
	}
}

// Choose answers the current prompt. The option must be one of the current
// prompt's options. A project whose metadata cannot be read still advances
// the wizard — both metadata axes collapse — and the parse error is returned
// for the host to report.
func (w *Wizard) Choose(option string) error {
	if w.state != WizardActive {
		return fmt.Errorf("wizard is not active")
	}
	if !slices.Contains(w.options(), option) {
		return fmt.Errorf("%q is not one of the available %s options", option, w.step)
	}

	var parseErr error
	switch w.step {
	case StepSolution:
		w.session.Solution = option
		w.narrowProjects(option)
	case StepProject:
		w.session.Project = option
		md, err := w.parse(option)
		w.session.Metadata = md
		parseErr = err
	case StepPlatform:
		w.session.Platform = option
	case StepConfiguration:
		w.session.Configuration = option
	}

	w.step++
	w.advance()
	return parseErr
}

// Cancel short-circuits the remaining steps. Safe to call at any point.
func (w *Wizard) Cancel() {
	if w.state == WizardActive {
		w.state = WizardCanceled
	}
}

// narrowProjects limits the project prompt to what the chosen solution
// references. A solution that cannot be read, or that references no project
// files on disk, leaves the full tree list in place.
func (w *Wizard) narrowProjects(solution string) {
	projects, err := SolutionProjects(solution)
	if err != nil {
		logger.Warn("Couldn't read projects from %s: %v", solution, err)
		return
	}
	if len(projects) == 0 {
		logger.Debug("Solution %s references no project files, keeping full list", solution)
		return
	}
	w.projects = projects
}

func (w *Wizard) options() []string {
	switch w.step {
	case StepSolution:
		return w.tree.Solutions
	case StepProject:
		return w.projects
	case StepPlatform:
		if w.session.Metadata == nil {
			return nil
		}
		return w.session.Metadata.Platforms
	case StepConfiguration:
		if w.session.Metadata == nil {
			return nil
		}
		return w.session.Metadata.Configurations
	default:
		return nil
	}
}

// advance skips steps with no options and marks the wizard complete once the
// sequence is exhausted.
func (w *Wizard) advance() {
	for w.state == WizardActive {
		if w.step > StepConfiguration {
			w.state = WizardComplete
			return
		}
		if len(w.options()) > 0 {
			return
		}
		w.step++
	}
}
