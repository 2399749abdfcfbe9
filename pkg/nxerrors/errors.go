// Package nxerrors defines the typed error taxonomy shared across NexusLink's
// core subsystems (§7 of the specification): input errors, resource errors,
// structural errors, and runtime errors. Every exported constructor returns
// a concrete struct implementing error and Unwrap, so callers can use
// errors.As to recover structured detail instead of parsing messages.
package nxerrors

import "fmt"

// VersionError reports a malformed version string or constraint.
type VersionError struct {
	Kind  string // "malformed_version" | "malformed_constraint"
	Input string
	Err   error
}

func NewVersionMalformed(input string, err error) error {
	return &VersionError{Kind: "malformed_version", Input: input, Err: err}
}

func NewConstraintMalformed(input string, err error) error {
	return &VersionError{Kind: "malformed_constraint", Input: input, Err: err}
}

func (e *VersionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Input, e.Err)
}

func (e *VersionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SymbolError reports failures from the three-tier symbol registry (§4.B).
type SymbolError struct {
	Kind string // "already_present" | "not_found" | "kind_mismatch" | "in_use"
	Name string
	Err  error
}

func NewAlreadyPresent(name string) error {
	return &SymbolError{Kind: "already_present", Name: name, Err: fmt.Errorf("symbol %q already present in table", name)}
}

func NewSymbolNotFound(name string) error {
	return &SymbolError{Kind: "not_found", Name: name, Err: fmt.Errorf("symbol %q not found", name)}
}

func NewKindMismatch(name string, want, got string) error {
	return &SymbolError{Kind: "kind_mismatch", Name: name, Err: fmt.Errorf("symbol %q has kind %s, expected %s", name, got, want)}
}

func NewInUse(name string, refcount int) error {
	return &SymbolError{Kind: "in_use", Name: name, Err: fmt.Errorf("symbol %q is in use (refcount=%d)", name, refcount)}
}

func (e *SymbolError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("symbol error [%s] %s: %v", e.Kind, e.Name, e.Err)
}

func (e *SymbolError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LoaderError reports image-loading and component-lifecycle failures (§4.C).
type LoaderError struct {
	Kind string // "open_failed" | "component_init_failed" | "symbol_not_found"
	Path string
	Err  error
}

func NewImageOpenFailed(path string, err error) error {
	return &LoaderError{Kind: "open_failed", Path: path, Err: err}
}

func NewComponentInitFailed(path string, err error) error {
	return &LoaderError{Kind: "component_init_failed", Path: path, Err: err}
}

func (e *LoaderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("loader error [%s] %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoaderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StructuralError reports dependency-graph and version-conflict failures
// that are fatal for an entire pipeline (§7 "Structural errors").
type StructuralError struct {
	Kind string // "dependency_cycle" | "non_reentrant_cycle" | "missing_required_dependency" | "version_conflict"
	Err  error
}

func NewDependencyCycle(edge string) error {
	return &StructuralError{Kind: "dependency_cycle", Err: fmt.Errorf("dependency cycle detected, involving edge %s", edge)}
}

func NewNonReentrantCycle(componentID string) error {
	return &StructuralError{Kind: "non_reentrant_cycle", Err: fmt.Errorf("component %q participates in a cycle but is not reentrance-capable", componentID)}
}

func NewMissingRequiredDependency(consumer, missing string) error {
	return &StructuralError{Kind: "missing_required_dependency", Err: fmt.Errorf("component %q requires missing dependency %q", consumer, missing)}
}

func NewVersionConflict(componentID, constraint, actual string) error {
	return &StructuralError{Kind: "version_conflict", Err: fmt.Errorf("component %q requires version %s, found %s", componentID, constraint, actual)}
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *StructuralError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RuntimeError reports failures that occur during pipeline execution and are
// routed through the pipeline's injectable error handler (§7 "Runtime errors").
type RuntimeError struct {
	ComponentID string
	Err         error
}

func NewRuntimeError(componentID string, err error) error {
	return &RuntimeError{ComponentID: componentID, Err: err}
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return ""
	}
	if e.ComponentID == "" {
		return fmt.Sprintf("runtime error: %v", e.Err)
	}
	return fmt.Sprintf("runtime error on component %s: %v", e.ComponentID, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MinimizerError reports automaton/AST minimization failures (§4.D).
type MinimizerError struct {
	Kind string // "allocation_failed" | "malformed_input"
	Err  error
}

func NewAllocationFailed(err error) error {
	return &MinimizerError{Kind: "allocation_failed", Err: err}
}

func NewMalformedInput(err error) error {
	return &MinimizerError{Kind: "malformed_input", Err: err}
}

func (e *MinimizerError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("minimizer error [%s]: %v", e.Kind, e.Err)
}

func (e *MinimizerError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError reports manifest (configuration source) parse failures, with
// optional line metadata recovered from the underlying YAML error.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports invalid-parameter / caller-bug class failures.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
