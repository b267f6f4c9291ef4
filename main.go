package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	lipgloss "github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"vcpick/arger"
	"vcpick/logger"
)

// -------------------------------
// Setup & CLI Flags
// --------------------------------
const (
	Flag_NoColor     = "no-color"
	Flag_Verbosity   = "verbosity"
	Flag_ProjectDir  = "project"
	Flag_Solution    = "sln"
	Flag_ProjectFile = "project-file"
	Flag_Platform    = "platform"
	Flag_Config      = "config"
	Flag_JSON        = "json"
	Flag_Watch       = "watch"
)

type BuiltFlags struct {
	NoColor     bool
	Verbosity   string
	ProjectDir  string
	Solution    string
	ProjectFile string
	Platform    string
	Config      string
	JSON        bool
	Watch       bool
}

func BuildFlags(flags map[string]arger.IParsedFlag) BuiltFlags {
	return BuiltFlags{
		NoColor:     arger.Get[bool](flags, Flag_NoColor),
		Verbosity:   arger.Get[string](flags, Flag_Verbosity),
		ProjectDir:  arger.Get[string](flags, Flag_ProjectDir),
		Solution:    arger.Get[string](flags, Flag_Solution),
		ProjectFile: arger.Get[string](flags, Flag_ProjectFile),
		Platform:    arger.Get[string](flags, Flag_Platform),
		Config:      arger.Get[string](flags, Flag_Config),
		JSON:        arger.Get[bool](flags, Flag_JSON),
		Watch:       arger.Get[bool](flags, Flag_Watch),
	}
}

var colorOff bool

func Init() BuiltFlags {
	_ = godotenv.Load()

	logger.SetColor(false)
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		logger.SetLevel(logger.ParseLevel(envLogLevel))
	}

	arger.RegisterFlag(arger.Flag[bool]{
		Name:        Flag_NoColor,
		Aliases:     []string{"-nc", "--no-color"},
		Default:     arger.Optional(false),
		Description: "Disable colored output in the terminal",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:           Flag_Verbosity,
		Aliases:        []string{"-v", "--verbose"},
		Default:        arger.Optional("warn"),
		Description:    "Set the logging verbosity level",
		ExpectedValues: []string{"", "none", "error", "err", "warn", "warning", "info", "debug", "dbg", "trace", "trc"},
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:    Flag_ProjectDir,
		Aliases: []string{"-p", "--project"},
		DefaultFunc: func() string {
			dir, err := os.Getwd()
			if err != nil {
				logger.Fatal("Couldn't get current working directory")
			}
			return dir
		},
		Description: "Set the search root (defaults to current working directory)",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:        Flag_Solution,
		Aliases:     []string{"-s", "--sln"},
		Default:     arger.Optional(""),
		Description: "Choose a solution file (path or bare file name)",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:        Flag_ProjectFile,
		Aliases:     []string{"-f", "--project-file"},
		Default:     arger.Optional(""),
		Description: "Choose a project file (path or bare file name)",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:        Flag_Platform,
		Aliases:     []string{"-a", "--platform"},
		Default:     arger.Optional(""),
		Description: "Choose a build platform, e.g. x64 or Win32",
	})
	arger.RegisterFlag(arger.Flag[string]{
		Name:        Flag_Config,
		Aliases:     []string{"-c", "--config"},
		Default:     arger.Optional(""),
		Description: "Choose a build configuration, e.g. Debug or Release",
	})
	arger.RegisterFlag(arger.Flag[bool]{
		Name:        Flag_JSON,
		Aliases:     []string{"-j", "--json"},
		Default:     arger.Optional(false),
		Description: "Print the completed selection as JSON for host tooling",
	})
	arger.RegisterFlag(arger.Flag[bool]{
		Name:        Flag_Watch,
		Aliases:     []string{"-w", "--watch"},
		Default:     arger.Optional(false),
		Description: "Keep running and re-scan when build files change",
	})

	parsedFlags := arger.Parse()
	builtFlags := BuildFlags(parsedFlags)

	logger.SetLevel(logger.ParseLevel(builtFlags.Verbosity))
	logger.SetColor(!builtFlags.NoColor)
	colorOff = builtFlags.NoColor

	return builtFlags
}

// -------------------------------
// Main
// --------------------------------
func main() {
	builtFlags := Init()

	root, err := filepath.Abs(builtFlags.ProjectDir)
	if err != nil {
		logger.Fatal("Couldn't get absolute path for search root: %v", err)
	}

	if builtFlags.Watch {
		runWatch(root, builtFlags)
		return
	}
	if err := runOnce(root, builtFlags); err != nil {
		logger.Fatal("%v", err)
	}
}

// runOnce scans the tree and drives the selection wizard with the answers
// supplied on the command line. When a step has several options and no
// answer, it prints the options and stops so the caller can pass the flag.
func runOnce(root string, flags BuiltFlags) error {
	tree, err := DiscoverBuildFiles(root)
	if err != nil {
		if errors.Is(err, ErrNoProjects) {
			return fmt.Errorf("no %s files under %s", projectExt, root)
		}
		return err
	}
	logger.Info("Found %d solution(s) and %d project(s) under %s",
		len(tree.Solutions), len(tree.Projects), root)

	wizard := NewWizard(tree)
	answers := map[StepKind]string{
		StepSolution:      flags.Solution,
		StepProject:       flags.ProjectFile,
		StepPlatform:      flags.Platform,
		StepConfiguration: flags.Config,
	}

	for {
		prompt := wizard.Next()
		if prompt == nil {
			break
		}

		choice := answers[prompt.Step]
		if choice == "" && len(prompt.Options) == 1 {
			choice = prompt.Options[0]
			logger.Debug("Only one %s option, choosing %s", prompt.Step, choice)
		}
		if choice == "" {
			printPrompt(prompt)
			wizard.Cancel()
			return nil
		}

		resolved, ok := matchOption(prompt.Options, choice)
		if !ok {
			wizard.Cancel()
			return fmt.Errorf("%q does not match any %s option", choice, prompt.Step)
		}
		if err := wizard.Choose(resolved); err != nil {
			logger.Warn("%v", err)
		}
	}

	if wizard.State() == WizardComplete {
		printSelection(wizard.Session(), flags.JSON)
	}
	return nil
}

func runWatch(root string, flags BuiltFlags) {
	rescan := func() {
		if err := runOnce(root, flags); err != nil {
			logger.Error("%v", err)
		}
	}
	rescan()

	watcher, err := NewBuildFileWatcher(root, rescan)
	if err != nil {
		logger.Fatal("Couldn't start watcher: %v", err)
	}
	defer watcher.Close()
	logger.Info("Watching %s for build file changes (ctrl-c to stop)", root)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan
	logger.Info("Shutting down")
}

// -------------------------------
// Helper Functions
// --------------------------------

// matchOption resolves a command-line answer against the prompt's options:
// exact match first, then a case-insensitive base-name match so paths can be
// answered with bare file names.
func matchOption(options []string, choice string) (string, bool) {
	for _, o := range options {
		if o == choice {
			return o, true
		}
	}
	for _, o := range options {
		if strings.EqualFold(filepath.Base(o), filepath.Base(choice)) {
			return o, true
		}
	}
	return "", false
}

func flagForStep(step StepKind) string {
	switch step {
	case StepSolution:
		return Flag_Solution
	case StepProject:
		return Flag_ProjectFile
	case StepPlatform:
		return Flag_Platform
	case StepConfiguration:
		return Flag_Config
	default:
		return ""
	}
}

func render(style lipgloss.Style, s string) string {
	if colorOff {
		return s
	}
	return style.Render(s)
}

func printPrompt(prompt *Prompt) {
	fmt.Println(render(styleTitle, prompt.Title))
	for _, option := range prompt.Options {
		fmt.Printf("  %s\n", render(styleOption, option))
	}
	fmt.Println(render(styleHint, fmt.Sprintf("pass --%s to choose", flagForStep(prompt.Step))))
}

func printSelection(session *Session, asJSON bool) {
	payload := session.Payload()

	if asJSON {
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			logger.Error("Couldn't encode selection: %v", err)
			return
		}
		fmt.Println(string(out))
		return
	}

	rows := []struct{ label, value string }{
		{"Solution", payload.Solution},
		{"Project", payload.Project},
		{"Platform", payload.Platform},
		{"Configuration", payload.Configuration},
	}
	fmt.Println(render(styleTitle, "Selection"))
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Printf("  %s %s\n", render(styleLabel, fmt.Sprintf("%-14s", row.label)), render(styleValue, row.value))
	}
}
