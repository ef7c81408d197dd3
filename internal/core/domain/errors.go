package domain

import "errors"

// Domain errors represent release-process failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Pipeline errors.

	// ErrStepFailed indicates a publish pipeline step failed.
	// The pipeline is fail-fast: the remaining steps are not run.
	ErrStepFailed = errors.New("pipeline step failed")

	// ErrArtifactsMissing indicates the build produced no wheel or no
	// source distribution. Both are required before upload.
	ErrArtifactsMissing = errors.New("build artifacts missing")

	// ErrConfirmationDeclined indicates the user declined the production
	// upload confirmation, or no terminal was available to ask.
	ErrConfirmationDeclined = errors.New("upload confirmation declined")

	// ErrNoTarget indicates neither --test nor --prod was selected.
	ErrNoTarget = errors.New("no publish target selected")

	// Descriptor errors.

	// ErrDescriptorInvalid indicates the package descriptor is missing
	// or cannot be parsed.
	ErrDescriptorInvalid = errors.New("package descriptor invalid")

	// ErrVersionMismatch indicates the descriptor version and the
	// package source version disagree.
	ErrVersionMismatch = errors.New("version mismatch")

	// Wiki errors.

	// ErrWikiClone indicates the wiki repository could not be cloned.
	// Unlike a pull failure this is a hard failure: there is no checkout
	// to fall back to.
	ErrWikiClone = errors.New("wiki clone failed")

	// ErrWikiPush indicates the wiki repository could not be pushed.
	ErrWikiPush = errors.New("wiki push failed")

	// ErrDocsMissing indicates the documentation directory does not exist.
	ErrDocsMissing = errors.New("documentation directory missing")

	// Index errors.

	// ErrTokenMissing indicates no credential is configured for the
	// selected package index.
	ErrTokenMissing = errors.New("index token missing")

	// ErrRateLimited indicates the package index rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUploadRejected indicates the package index rejected the upload.
	// Rejections are permanent and must not be retried.
	ErrUploadRejected = errors.New("upload rejected")
)
