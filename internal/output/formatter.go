package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrNoResult is returned when a report carries nothing the formatter can render.
	ErrNoResult = errors.New("report has no simulation result")
)

// Formatter renders a report to bytes. Format must not write anywhere itself;
// callers decide whether the bytes go to a file or a terminal.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name is the canonical format name used on the command line.
	Name() string
}

// FormatterFunc lets a plain function act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

var (
	registryMu sync.RWMutex
	formatters = map[string]Formatter{}
	aliases    = map[string]string{}
)

func init() {
	mustRegister(ConsoleFormatter{}, "summary", "text")
	mustRegister(ConsoleVerboseFormatter{}, "verbose")
	mustRegister(CSVSummarizer{}, "csv-summary")
	mustRegister(CSVDetailedExporter{}, "csv-detailed")
	mustRegister(JSONFormatter{}, "json-pretty")
	mustRegister(MonteCarloCSVFormatter{}, "mc-csv", "montecarlo", "monte-carlo-csv")
}

func mustRegister(f Formatter, alias ...string) {
	if err := RegisterFormatter(f, alias...); err != nil {
		panic(err)
	}
}

// RegisterFormatter adds a formatter under its Name and any aliases.
// Names and aliases are case-insensitive and must not already be taken.
func RegisterFormatter(f Formatter, alias ...string) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := strings.ToLower(strings.TrimSpace(f.Name()))
	if name == "" {
		return fmt.Errorf("formatter has an empty name")
	}
	keys := append([]string{name}, alias...)
	for i, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, ok := formatters[k]; ok {
			return fmt.Errorf("format name %q is already registered", k)
		}
		if _, ok := aliases[k]; ok {
			return fmt.Errorf("format name %q is already an alias", k)
		}
		keys[i] = k
	}

	formatters[name] = f
	for _, a := range keys[1:] {
		aliases[a] = name
	}
	return nil
}

// GetFormatterByName returns the formatter for a name or alias, nil if unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	registryMu.RLock()
	defer registryMu.RUnlock()
	return formatters[n]
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	if mapped, ok := aliases[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(formatters)
}

// AvailableFormatAliases returns the supported alias keys, sorted.
func AvailableFormatAliases() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(aliases)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
