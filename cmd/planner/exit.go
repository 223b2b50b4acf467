package main

import (
	"errors"
	"fmt"
	"io"

	"carbon-planner/core/models"
)

// Process exit codes
const (
	ExitSuccess    = 0
	ExitInput      = 1
	ExitStorage    = 2
	ExitInfeasible = 20
)

// exitError carries the process exit code for an error
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func withCode(code int, format string, args ...interface{}) error {
	return &exitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// exitCode maps an error to a process exit code. Errors without an explicit
// code are input errors, except engine infeasibility.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, models.ErrNoAdmissibleRegion),
		errors.Is(err, models.ErrInfeasiblePlan),
		errors.Is(err, models.ErrInfeasibleBudget):
		return ExitInfeasible
	}
	return ExitInput
}

// handleExit reports err on w and returns the exit code to terminate with
func handleExit(w io.Writer, err error) int {
	code := exitCode(err)
	if err != nil {
		fmt.Fprintln(w, "planner:", err)
	}
	return code
}
