package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SyncActionKind classifies one wiki sync action.
type SyncActionKind string

const (
	// SyncCopy copies a documentation file into the wiki checkout.
	SyncCopy SyncActionKind = "copy"

	// SyncSkip leaves an up-to-date wiki page untouched.
	SyncSkip SyncActionKind = "skip"
)

// SyncAction is a single planned wiki mutation.
type SyncAction struct {
	// Kind is the action type.
	Kind SyncActionKind

	// Source is the documentation file path.
	Source string

	// Dest is the target file name inside the wiki checkout.
	Dest string

	// Reason explains skip actions.
	Reason string
}

// String renders the action for dry-run output.
func (a SyncAction) String() string {
	switch a.Kind {
	case SyncSkip:
		return fmt.Sprintf("skip  %s (%s)", a.Dest, a.Reason)
	default:
		return fmt.Sprintf("copy  %s -> %s", a.Source, a.Dest)
	}
}

// SyncPlan is the full set of actions one wiki sync would perform.
type SyncPlan struct {
	// Version is the descriptor version used to tag the commit.
	Version string

	// Actions are the planned actions, in deterministic order.
	Actions []SyncAction
}

// Copies returns only the actions that mutate the wiki checkout.
func (p *SyncPlan) Copies() []SyncAction {
	out := make([]SyncAction, 0, len(p.Actions))
	for _, a := range p.Actions {
		if a.Kind == SyncCopy {
			out = append(out, a)
		}
	}
	return out
}

// Empty reports whether the plan performs no mutation.
func (p *SyncPlan) Empty() bool {
	return len(p.Copies()) == 0
}

// CommitMessage returns the commit message for the plan, tagged with the
// descriptor version when one is known.
func (p *SyncPlan) CommitMessage() string {
	if p.Version == "" {
		return "Sync documentation"
	}
	return fmt.Sprintf("Sync documentation (v%s)", p.Version)
}

// WikiPageName maps a documentation file name to its wiki page file
// name. Plain-text and reStructuredText sources are renamed to carry a
// .md extension; the base name is preserved. Markdown and all other
// names pass through unchanged.
func WikiPageName(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".txt", ".rst":
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".md"
	default:
		return base
	}
}
