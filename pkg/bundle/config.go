package bundle

import "runtime"

// Default control-file names, resolved against the working directory.
const (
	DefaultIgnoreFile   = ".contextignore"
	DefaultMinifyFile   = ".contextminify"
	DefaultPriorityFile = ".contextpriority"
)

const (
	defaultMaxFileKB = 1024 // Per-file size ceiling in KB; larger files are skipped.

	largeFileBytes   = 100 * 1024 // Text above this is sampled, not read in full.
	sampleReadBytes  = 50 * 1024  // How much of an oversized text file is kept.
	binarySniffBytes = 8192       // Sample size for binary detection of large files.
)

// Options configures a single pipeline run.
type Options struct {
	WorkingDir string   // Base directory for inputs and control files; default ".".
	InputPaths []string // Files or directories to scan; default ["."].

	CLIIgnores       []string // Highest-precedence ignore patterns.
	CustomIgnoreFile string   // Ignore control file name, default .contextignore.
	MinifyFile       string   // Minify control file name, default .contextminify.
	PriorityFile     string   // Priority control file name, default .contextpriority.
	NoDefaultIgnores bool     // Disables the built-in ignore patterns.

	RemoveWhitespace bool // Normalize whitespace in eligible files.
	KeepComments     bool // Disable comment stripping entirely.
	MaxFileKB        int  // Per-file size ceiling in KB, default 1024.

	TokenBudget int // Token ceiling for the whole artifact; 0 disables budgeting.

	MaxWorkers int // Transformer pool size; 0 uses all CPUs.

	// Placeholder text generators. Defaults name the file in a bracketed
	// sentence.
	OnBinaryFile func(path string) string
	OnMinifyFile func(path string) string

	// Counter overrides the tokenizer, mainly for tests. When nil the
	// pipeline builds the default BPE counter once per run.
	Counter TokenCounter
}

// withDefaults fills unset fields so the pipeline never branches on zero
// values.
func (o Options) withDefaults() Options {
	if o.WorkingDir == "" {
		o.WorkingDir = "."
	}
	if len(o.InputPaths) == 0 {
		o.InputPaths = []string{"."}
	}
	if o.CustomIgnoreFile == "" {
		o.CustomIgnoreFile = DefaultIgnoreFile
	}
	if o.MinifyFile == "" {
		o.MinifyFile = DefaultMinifyFile
	}
	if o.PriorityFile == "" {
		o.PriorityFile = DefaultPriorityFile
	}
	if o.MaxFileKB <= 0 {
		o.MaxFileKB = defaultMaxFileKB
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = runtime.NumCPU()
	}
	if o.OnBinaryFile == nil {
		o.OnBinaryFile = defaultBinaryPlaceholder
	}
	if o.OnMinifyFile == nil {
		o.OnMinifyFile = defaultMinifyPlaceholder
	}
	return o
}
