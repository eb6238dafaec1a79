package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidParameterError(t *testing.T) {
	err := NewInvalidParameter("target_ctr", 1.5, "target CTR must lie in [0,1]")

	if !IsInvalidParameter(err) {
		t.Fatal("expected IsInvalidParameter to be true")
	}
	if IsMalformedInput(err) {
		t.Fatal("did not expect IsMalformedInput to be true")
	}
	if !strings.Contains(err.Error(), "target_ctr=1.5") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestInvalidParameterError_Wrapped(t *testing.T) {
	inner := NewInvalidParameter("lift", -1.5, "lift must be greater than -100%")
	wrapped := fmt.Errorf("simulation failed: %w", inner)

	if !IsInvalidParameter(wrapped) {
		t.Fatal("expected wrapped error to be detected")
	}

	var ipe *InvalidParameterError
	if !errors.As(wrapped, &ipe) {
		t.Fatal("errors.As failed")
	}
	if ipe.Param != "lift" {
		t.Errorf("Param=%s, want lift", ipe.Param)
	}
}

func TestMalformedInputError(t *testing.T) {
	err := &MalformedInputError{Path: "logs.csv", Line: 7, Reason: "bad timestamp"}
	if !IsMalformedInput(err) {
		t.Fatal("expected IsMalformedInput to be true")
	}
	if got := err.Error(); !strings.Contains(got, "logs.csv:7") {
		t.Errorf("expected line context in message, got %s", got)
	}

	noLine := &MalformedInputError{Path: "logs.csv", Reason: "file is empty"}
	if strings.Contains(noLine.Error(), ":0") {
		t.Errorf("line 0 should not be rendered: %s", noLine.Error())
	}
}
