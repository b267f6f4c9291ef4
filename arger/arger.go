package arger

import (
	"fmt"
	"os"
	"sort"
	"strings"

	xterm "golang.org/x/term"
)

var registeredFlags = make(map[string]IFlag)
var aliasToFlag = make(map[string]IFlag)

// -------------------------------
// IFlag - interface for all flag types
// --------------------------------

type IFlag interface {
	GetName() string
	GetDescription() string
	GetAliases() []string
	GetDefault() any
	GetExpectedValues() []any
	parse(value string) (IParsedFlag, error)
	defaultParsed() IParsedFlag
}

type IParsedFlag interface {
	GetValue() any
	GetFlag() IFlag
}

// -------------------------------
// Flag - generic flag type
// --------------------------------

type Flag[T any] struct {
	Name           string
	Description    string
	Aliases        []string
	Default        *T
	DefaultFunc    func() T
	ExpectedValues []T
	Parser         func(string) (T, error)
}

func (f Flag[T]) GetName() string        { return f.Name }
func (f Flag[T]) GetDescription() string { return f.Description }
func (f Flag[T]) GetAliases() []string   { return f.Aliases }

func (f Flag[T]) GetDefault() any {
	if f.Default != nil {
		return *f.Default
	}
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return nil
}

func (f Flag[T]) GetExpectedValues() []any {
	out := make([]any, len(f.ExpectedValues))
	for i, v := range f.ExpectedValues {
		out[i] = v
	}
	return out
}

func (f Flag[T]) parse(value string) (IParsedFlag, error) {
	var v T
	var err error
	if f.Parser != nil {
		v, err = f.Parser(value)
	} else if s, ok := any(&v).(*string); ok {
		*s = value // raw value; Sscan would stop at whitespace
	} else {
		_, err = fmt.Sscan(value, &v)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse value %q", value)
	}

	if len(f.ExpectedValues) > 0 {
		valid := false
		for _, ev := range f.ExpectedValues {
			if strings.EqualFold(fmt.Sprintf("%v", ev), fmt.Sprintf("%v", v)) {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("invalid value %q", value)
		}
	}

	return ParsedFlag[T]{flag: &f, Value: v}, nil
}

func (f Flag[T]) defaultParsed() IParsedFlag {
	if f.Default != nil {
		return ParsedFlag[T]{flag: &f, Value: *f.Default}
	}
	if f.DefaultFunc != nil {
		return ParsedFlag[T]{flag: &f, Value: f.DefaultFunc()}
	}
	return nil
}

// -------------------------------
// ParsedFlag - generic parsed flag type
// --------------------------------

type ParsedFlag[T any] struct {
	flag  *Flag[T]
	Value T
}

func (pf ParsedFlag[T]) GetValue() any  { return pf.Value }
func (pf ParsedFlag[T]) GetFlag() IFlag { return pf.flag }

// Optional wraps a literal so it can be used as a flag default.
func Optional[T any](v T) *T { return &v }

// Get reads a parsed flag value by name, returning the zero value when the
// flag is absent or of a different type.
func Get[T any](flags map[string]IParsedFlag, name string) T {
	var zero T
	pf, ok := flags[name]
	if !ok {
		return zero
	}
	v, ok := pf.GetValue().(T)
	if !ok {
		return zero
	}
	return v
}

// -------------------------------
// Register & Parse
// --------------------------------

func RegisterFlag(f IFlag) {
	if f.GetName() == "" {
		usageError("Flag name cannot be empty")
	}
	if _, exists := registeredFlags[f.GetName()]; exists {
		usageError("Flag name %s is already registered", f.GetName())
	}
	if len(f.GetAliases()) == 0 {
		usageError("Flag --%s must have at least one alias", f.GetName())
	}

	registeredFlags[f.GetName()] = f
	for _, alias := range f.GetAliases() {
		if _, exists := aliasToFlag[alias]; exists {
			usageError("Alias %s is already registered for another flag", alias)
		}
		if alias == "--help" || alias == "-h" {
			usageError("Alias %s is reserved for help", alias)
		}
		if !strings.HasPrefix(alias, "-") {
			usageError("Alias %s must start with - or -- per convention", alias)
		}
		aliasToFlag[alias] = f
	}
}

func Parse() map[string]IParsedFlag {
	parsed := make(map[string]IParsedFlag)
	var pending IFlag

	for _, arg := range os.Args[1:] {
		switch {
		case arg == "--help" || arg == "-h":
			PrintUsage()
			os.Exit(0)
		case strings.HasPrefix(arg, "-"):
			if pending != nil {
				flagError(pending, "expects a value but none was provided")
			}
			f, ok := aliasToFlag[arg]
			if !ok {
				usageError("Unknown flag: %s", arg)
			}
			// a bool flag with no parser is a switch: presence means true
			if b, isBool := f.(Flag[bool]); isBool && b.Parser == nil {
				parsed[f.GetName()] = ParsedFlag[bool]{flag: &b, Value: true}
				continue
			}
			pending = f
		default:
			if pending == nil {
				usageError("Unexpected argument: %s", arg)
			}
			pf, err := pending.parse(arg)
			if err != nil {
				flagError(pending, "%v", err)
			}
			parsed[pending.GetName()] = pf
			pending = nil
		}
	}
	if pending != nil {
		flagError(pending, "expects a value but none was provided")
	}

	// apply defaults
	for name, f := range registeredFlags {
		if _, exists := parsed[name]; !exists {
			if def := f.defaultParsed(); def != nil {
				parsed[name] = def
			}
		}
	}

	return parsed
}

func usageError(format string, v ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	PrintUsage()
	os.Exit(2)
}

func flagError(f IFlag, format string, v ...any) {
	fmt.Fprintf(os.Stderr, "Flag --%s: %s\n", f.GetName(), fmt.Sprintf(format, v...))
	os.Exit(2)
}

// -------------------------------
// Usage / Help
// --------------------------------

func PrintUsage() {
	fmt.Println("Usage:")

	termWidth, _, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = 80
	}

	names := make([]string, 0, len(registeredFlags))
	leftColWidth := 10
	for name := range registeredFlags {
		names = append(names, name)
		if len(name) > leftColWidth {
			leftColWidth = len(name)
		}
	}
	sort.Strings(names)
	leftColWidth += 2

	indent := 4
	descWidth := termWidth - indent - leftColWidth - 1
	if descWidth < 20 {
		descWidth = 20
	}

	for _, name := range names {
		f := registeredFlags[name]
		aliases := strings.Join(f.GetAliases(), ", ")
		fmt.Printf("%s%-*s %s\n", strings.Repeat(" ", indent), leftColWidth, f.GetName(), aliases)
		if f.GetDescription() != "" {
			for _, ln := range wrapText(f.GetDescription(), descWidth) {
				fmt.Printf("%s%s\n", strings.Repeat(" ", indent+leftColWidth), ln)
			}
		}
		if len(f.GetExpectedValues()) > 0 {
			values := make([]string, len(f.GetExpectedValues()))
			for i, v := range f.GetExpectedValues() {
				values[i] = fmt.Sprintf("%v", v)
				if values[i] == "" {
					values[i] = "<empty>"
				}
			}
			fmt.Printf("%s[%s]\n", strings.Repeat(" ", indent+leftColWidth), strings.Join(values, ", "))
		}
		fmt.Println()
	}
}

func wrapText(s string, maxWidth int) []string {
	if s == "" || maxWidth <= 0 {
		return nil
	}
	var out []string
	var line strings.Builder
	for _, w := range strings.Fields(s) {
		extra := 0
		if line.Len() > 0 {
			extra = 1
		}
		if line.Len()+len(w)+extra > maxWidth {
			out = append(out, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		out = append(out, line.String())
	}
	return out
}
