package domain

import "time"

// StepName identifies one publish pipeline step.
type StepName string

const (
	// StepTests runs the test suite.
	StepTests StepName = "tests"

	// StepChecks runs the formatting and lint checks.
	StepChecks StepName = "checks"

	// StepClean removes previous build artifacts.
	StepClean StepName = "clean"

	// StepBuild builds the wheel and source distribution.
	StepBuild StepName = "build"

	// StepArtifactCheck verifies the dist directory contents.
	StepArtifactCheck StepName = "artifact-check"

	// StepIndexCheck validates artifact metadata against index rules.
	StepIndexCheck StepName = "index-check"

	// StepUpload uploads the artifacts to the package index.
	StepUpload StepName = "upload"

	// StepRelease publishes a GitHub release with the artifacts attached.
	StepRelease StepName = "release"

	// StepVerify installs the published package into a scratch
	// environment and smoke-tests it.
	StepVerify StepName = "verify"
)

// PublishTarget selects the package index to upload to.
type PublishTarget string

const (
	// TargetTest is the test package index.
	TargetTest PublishTarget = "test"

	// TargetProd is the production package index.
	TargetProd PublishTarget = "prod"
)

// PublishPlan describes a requested publish run.
type PublishPlan struct {
	// Target is the index to publish to.
	Target PublishTarget

	// SkipTests skips the test step.
	SkipTests bool

	// SkipChecks skips the quality-check step.
	SkipChecks bool

	// VerifyOnly runs only the install verification step.
	VerifyOnly bool

	// AutoConfirm answers the production confirmation without
	// prompting. Intended for non-interactive automation.
	AutoConfirm bool

	// SkipRelease skips the GitHub release step.
	SkipRelease bool
}

// Steps returns the pipeline steps for the plan, in execution order.
// The pipeline is fail-fast: callers stop at the first failed step.
func (p PublishPlan) Steps() []StepName {
	if p.VerifyOnly {
		return []StepName{StepVerify}
	}

	steps := make([]StepName, 0, 9)
	if !p.SkipTests {
		steps = append(steps, StepTests)
	}
	if !p.SkipChecks {
		steps = append(steps, StepChecks)
	}
	steps = append(steps, StepClean, StepBuild, StepArtifactCheck, StepIndexCheck, StepUpload)
	if p.Target == TargetProd && !p.SkipRelease {
		steps = append(steps, StepRelease)
	}
	steps = append(steps, StepVerify)
	return steps
}

// StepResult records the outcome of one pipeline step.
type StepResult struct {
	// Step is the step that ran.
	Step StepName

	// Err is nil on success.
	Err error

	// Duration is how long the step took.
	Duration time.Duration

	// Detail is optional human-readable output for the step.
	Detail string
}

// OK reports whether the step succeeded.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// PublishRun is the record of one publish pipeline execution.
type PublishRun struct {
	// ID uniquely identifies the run.
	ID string

	// Version is the descriptor version being published.
	Version string

	// Target is the index published to.
	Target PublishTarget

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time

	// Steps are the per-step outcomes, in execution order.
	Steps []StepResult

	// Succeeded reports whether every executed step passed.
	Succeeded bool
}

// FailedStep returns the first failed step name, or empty if none failed.
func (r *PublishRun) FailedStep() StepName {
	for _, s := range r.Steps {
		if !s.OK() {
			return s.Step
		}
	}
	return ""
}
