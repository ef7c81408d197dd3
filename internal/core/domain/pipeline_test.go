package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPublishPlan_Steps_Default verifies the full pipeline order
func TestPublishPlan_Steps_Default(t *testing.T) {
	plan := PublishPlan{Target: TargetTest}

	steps := plan.Steps()

	assert.Equal(t, []StepName{
		StepTests, StepChecks, StepClean, StepBuild,
		StepArtifactCheck, StepIndexCheck, StepUpload, StepVerify,
	}, steps)
}

func TestPublishPlan_Steps_SkipTests(t *testing.T) {
	plan := PublishPlan{Target: TargetTest, SkipTests: true}

	steps := plan.Steps()

	assert.NotContains(t, steps, StepTests)
	assert.Contains(t, steps, StepChecks)
}

func TestPublishPlan_Steps_SkipChecks(t *testing.T) {
	plan := PublishPlan{Target: TargetTest, SkipChecks: true}

	steps := plan.Steps()

	assert.NotContains(t, steps, StepChecks)
	assert.Contains(t, steps, StepTests)
}

// TestPublishPlan_Steps_ProdIncludesRelease verifies the release step is
// only part of production publishes
func TestPublishPlan_Steps_ProdIncludesRelease(t *testing.T) {
	prod := PublishPlan{Target: TargetProd}
	test := PublishPlan{Target: TargetTest}

	assert.Contains(t, prod.Steps(), StepRelease)
	assert.NotContains(t, test.Steps(), StepRelease)
}

func TestPublishPlan_Steps_SkipRelease(t *testing.T) {
	plan := PublishPlan{Target: TargetProd, SkipRelease: true}

	assert.NotContains(t, plan.Steps(), StepRelease)
}

func TestPublishPlan_Steps_VerifyOnly(t *testing.T) {
	plan := PublishPlan{Target: TargetTest, VerifyOnly: true}

	assert.Equal(t, []StepName{StepVerify}, plan.Steps())
}

func TestPublishRun_FailedStep(t *testing.T) {
	run := PublishRun{Steps: []StepResult{
		{Step: StepTests},
		{Step: StepBuild, Err: errors.New("boom")},
	}}

	assert.Equal(t, StepBuild, run.FailedStep())
}

func TestPublishRun_FailedStep_NoneFailed(t *testing.T) {
	run := PublishRun{Steps: []StepResult{{Step: StepTests}, {Step: StepBuild}}}

	assert.Equal(t, StepName(""), run.FailedStep())
}

func TestStepResult_OK(t *testing.T) {
	assert.True(t, StepResult{Step: StepClean}.OK())
	assert.False(t, StepResult{Step: StepClean, Err: errors.New("rm failed")}.OK())
}
