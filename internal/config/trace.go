package config

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Diagnostic environment variables. These gate human-readable tracing only;
// per spec they must never influence unification or lowering results.
const (
	EnvPrintMismatches   = "ROC_PRINT_MISMATCHES"
	EnvPrintUnifications = "ROC_PRINT_UNIFICATIONS"
	EnvDebugAliasAnalysis = "ROC_DEBUG_ALIAS_ANALYSIS"
)

// Flags is the set of diagnostic toggles read once at process start.
type Flags struct {
	PrintMismatches   bool
	PrintUnifications bool
	DebugAliasAnalysis bool
}

var (
	flagsOnce sync.Once
	flags     Flags
)

// DebugFlags returns the diagnostic flags, reading the environment exactly
// once per process.
func DebugFlags() Flags {
	flagsOnce.Do(func() {
		flags = Flags{
			PrintMismatches:    os.Getenv(EnvPrintMismatches) != "",
			PrintUnifications:  os.Getenv(EnvPrintUnifications) != "",
			DebugAliasAnalysis: os.Getenv(EnvDebugAliasAnalysis) != "",
		}
	})
	return flags
}

// ResetFlagsForTest forces DebugFlags to re-read the environment. Tests use
// this to exercise tracing under controlled env vars.
func ResetFlagsForTest() {
	flagsOnce = sync.Once{}
}

// Tracer writes one line per traced event to an output stream, colorizing
// only when that stream is an actual terminal.
type Tracer struct {
	out       io.Writer
	colorize  bool
	sessionID string
}

// NewTracer builds a Tracer over w. Color is enabled only when w is backed
// by a real terminal (checked via isatty), matching how the teacher's
// terminal builtins decide whether to emit ANSI escapes.
func NewTracer(w io.Writer) *Tracer {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Tracer{out: w, colorize: colorize, sessionID: uuid.NewString()[:8]}
}

// StderrTracer is the process-wide tracer used by the core when a debug
// flag is set.
var StderrTracer = NewTracer(os.Stderr)

// Printf writes a single traced line, prefixed with the tracer's session id
// for correlating related lines across one compiler invocation.
func (t *Tracer) Printf(format string, args ...any) {
	prefix := fmt.Sprintf("[%s] ", t.sessionID)
	if t.colorize {
		prefix = "\x1b[2m" + prefix + "\x1b[0m"
	}
	fmt.Fprintf(t.out, prefix+format+"\n", args...)
}

// DumpYAML renders v as YAML to the tracer's output, used for structured,
// machine-diffable dumps of Unified outcomes when ROC_PRINT_UNIFICATIONS is
// set. Never called on the hot path when the flag is unset.
func (t *Tracer) DumpYAML(label string, v any) {
	b, err := yaml.Marshal(v)
	if err != nil {
		t.Printf("%s: <unmarshalable: %v>", label, err)
		return
	}
	t.Printf("%s:\n%s", label, string(b))
}
