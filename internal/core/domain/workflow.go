package domain

// DefaultStrictSelectors are the lint error classes that break the
// build: syntax errors and undefined names. Everything outside this
// selection is reported but never fails CI.
var DefaultStrictSelectors = []string{"E9", "F63", "F7", "F82"}

// Matrix is the CI build matrix: every OS is crossed with every
// interpreter version by the CI orchestrator.
type Matrix struct {
	// OSes are the runner images.
	OSes []string

	// InterpreterVersions are the interpreter versions under test.
	InterpreterVersions []string
}

// DefaultMatrix returns the matrix the project tests against.
func DefaultMatrix() Matrix {
	return Matrix{
		OSes:                []string{"ubuntu-latest", "macos-latest", "windows-latest"},
		InterpreterVersions: []string{"3.9", "3.10", "3.11", "3.12"},
	}
}

// Jobs returns the number of independent CI jobs the matrix expands to.
func (m Matrix) Jobs() int {
	return len(m.OSes) * len(m.InterpreterVersions)
}

// Valid reports whether the matrix has at least one OS and one version.
func (m Matrix) Valid() bool {
	return len(m.OSes) > 0 && len(m.InterpreterVersions) > 0
}

// LintPolicy describes the two-pass lint configuration.
type LintPolicy struct {
	// StrictSelectors are the build-breaking error classes.
	StrictSelectors []string

	// MaxLineLength is the style-pass line length limit.
	MaxLineLength int

	// MaxComplexity is the style-pass complexity limit.
	MaxComplexity int
}

// DefaultLintPolicy returns the project lint policy.
func DefaultLintPolicy() LintPolicy {
	return LintPolicy{
		StrictSelectors: DefaultStrictSelectors,
		MaxLineLength:   127,
		MaxComplexity:   10,
	}
}

// WorkflowSpec is the input to the CI workflow renderer.
type WorkflowSpec struct {
	// Name is the workflow name.
	Name string

	// Package is the distribution name being tested.
	Package string

	// Matrix is the test matrix.
	Matrix Matrix

	// Lint is the lint policy.
	Lint LintPolicy

	// UploadOnTag enables the conditional build-and-upload job that
	// runs when a release tag is pushed.
	UploadOnTag bool
}
