package document

import "fmt"

type UnknownLevelError struct {
	Level string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("level not found: %s", e.Level)
}

func (e *UnknownLevelError) InvalidInput() bool {
	return true
}

type UnknownViewError struct {
	View string
}

func (e *UnknownViewError) Error() string {
	if e.View == "" {
		return "no active view"
	}
	return fmt.Sprintf("view not found: %s", e.View)
}

type UnknownElementError struct {
	ID int
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("element not found: %d", e.ID)
}

type InvalidScopeError struct {
	Scope string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid scope: %s", e.Scope)
}

func (e *InvalidScopeError) InvalidInput() bool {
	return true
}
