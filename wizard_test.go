package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWizard_FullSequence(t *testing.T) {
	dir := buildTestTree(t)
	tree, err := DiscoverBuildFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	wizard := NewWizard(tree)

	prompt := wizard.Next()
	if prompt == nil || prompt.Step != StepSolution {
		t.Fatalf("expected solution prompt, got %+v", prompt)
	}
	if err := wizard.Choose(prompt.Options[0]); err != nil {
		t.Fatal(err)
	}

	// the chosen solution references only App.vcxproj, so the project
	// prompt narrows from the full tree list
	prompt = wizard.Next()
	if prompt == nil || prompt.Step != StepProject {
		t.Fatalf("expected project prompt, got %+v", prompt)
	}
	if len(prompt.Options) != 1 || filepath.Base(prompt.Options[0]) != "App.vcxproj" {
		t.Fatalf("expected narrowed project options, got %v", prompt.Options)
	}
	if err := wizard.Choose(prompt.Options[0]); err != nil {
		t.Fatal(err)
	}

	prompt = wizard.Next()
	if prompt == nil || prompt.Step != StepPlatform {
		t.Fatalf("expected platform prompt, got %+v", prompt)
	}
	if !reflect.DeepEqual(prompt.Options, []string{"Win32", "x64"}) {
		t.Fatalf("unexpected platform options: %v", prompt.Options)
	}
	if err := wizard.Choose("x64"); err != nil {
		t.Fatal(err)
	}

	prompt = wizard.Next()
	if prompt == nil || prompt.Step != StepConfiguration {
		t.Fatalf("expected configuration prompt, got %+v", prompt)
	}
	if err := wizard.Choose("Debug"); err != nil {
		t.Fatal(err)
	}

	if wizard.State() != WizardComplete {
		t.Fatalf("expected complete wizard, state %d", wizard.State())
	}
	payload := wizard.Session().Payload()
	if filepath.Base(payload.Solution) != "App.sln" ||
		filepath.Base(payload.Project) != "App.vcxproj" ||
		payload.Platform != "x64" || payload.Configuration != "Debug" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestWizard_SkipsSolutionStepWhenNone(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Lone", "Lone.vcxproj"), sampleVcxproj)
	tree, err := DiscoverBuildFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	wizard := NewWizard(tree)
	prompt := wizard.Next()
	if prompt == nil || prompt.Step != StepProject {
		t.Fatalf("expected project prompt first, got %+v", prompt)
	}
	if wizard.Session().Solution != "" {
		t.Fatalf("solution should stay empty, got %s", wizard.Session().Solution)
	}
}

func TestWizard_EmptyMetadataCollapsesAxes(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "Bare.vcxproj"), "<Project>\n</Project>\n")
	tree, err := DiscoverBuildFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	wizard := NewWizard(tree)
	if err := wizard.Choose(tree.Projects[0]); err != nil {
		t.Fatal(err)
	}
	if wizard.State() != WizardComplete {
		t.Fatalf("expected wizard to complete past empty axes, state %d", wizard.State())
	}
	session := wizard.Session()
	if session.Platform != "" || session.Configuration != "" {
		t.Fatalf("collapsed axes must stay empty: %+v", session)
	}
}

func TestWizard_ParseFailureStillCompletes(t *testing.T) {
	tree := &BuildTree{Root: "/r", Projects: []string{"/r/a.vcxproj"}}
	wizard := NewWizard(tree)
	wizard.parse = func(string) (*ParseResult, error) {
		return &ParseResult{}, errors.New("boom")
	}

	err := wizard.Choose("/r/a.vcxproj")
	if err == nil {
		t.Fatal("expected the parse error to surface")
	}
	if wizard.State() != WizardComplete {
		t.Fatalf("parse failure must not stall the wizard, state %d", wizard.State())
	}
	if wizard.Session().Project != "/r/a.vcxproj" {
		t.Fatalf("project should still be recorded, got %q", wizard.Session().Project)
	}
}

func TestWizard_RejectsUnknownOption(t *testing.T) {
	tree := &BuildTree{Root: "/r", Projects: []string{"/r/a.vcxproj"}}
	wizard := NewWizard(tree)

	if err := wizard.Choose("/r/other.vcxproj"); err == nil {
		t.Fatal("expected error for option not in the prompt")
	}
	prompt := wizard.Next()
	if prompt == nil || prompt.Step != StepProject {
		t.Fatalf("rejected choice must not advance the wizard, got %+v", prompt)
	}
}

func TestWizard_CancelShortCircuits(t *testing.T) {
	tree := &BuildTree{Root: "/r", Projects: []string{"/r/a.vcxproj"}}
	wizard := NewWizard(tree)

	wizard.Cancel()
	if wizard.State() != WizardCanceled {
		t.Fatalf("expected canceled state, got %d", wizard.State())
	}
	if wizard.Next() != nil {
		t.Fatal("canceled wizard must not prompt")
	}
	if err := wizard.Choose("/r/a.vcxproj"); err == nil {
		t.Fatal("canceled wizard must not accept choices")
	}
}
