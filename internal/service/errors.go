package service

import "errors"

var (
	// ErrBatchNotSavable means at least one draft entry still needs the
	// user (a blocking issue), or lacks a project, a duration in range or a
	// real calendar date. Nothing was written.
	ErrBatchNotSavable = errors.New("draft has unresolved entries")

	// ErrLLMDisabled is returned by text parsing when no LLM is configured.
	ErrLLMDisabled = errors.New("llm parsing is disabled (set TALLY_LLM_ENABLED=true or use --from-json)")

	ErrProjectNotFound = errors.New("project not found")

	// ErrAmbiguousProject means a project reference matched several projects.
	ErrAmbiguousProject = errors.New("project reference is ambiguous")
)
