package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestWithSpinner_PropagatesError(t *testing.T) {
	wantErr := errors.New("daemon did not start")

	err := WithSpinner("starting", func() error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("WithSpinner error = %v, want %v", err, wantErr)
	}
}

func TestWithSpinner_Success(t *testing.T) {
	ran := false

	err := WithSpinner("starting", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Errorf("WithSpinner error = %v, want nil", err)
	}
	if !ran {
		t.Error("wrapped function did not run")
	}
}

func TestSimpleSpinner_StartStop(t *testing.T) {
	// Start and Stop must not deadlock
	s := NewSimpleSpinner("working")
	s.Start()
	s.Stop()
}

func TestSpinnerModel_DoneRendersResult(t *testing.T) {
	m := NewSpinner("working")

	updated, _ := m.Update(spinnerDoneMsg{result: "agent started"})
	sm, ok := updated.(SpinnerModel)
	if !ok {
		t.Fatalf("Update returned %T, want SpinnerModel", updated)
	}

	if !sm.done {
		t.Error("model should be done after spinnerDoneMsg")
	}
	if view := sm.View(); !strings.Contains(view, "agent started") {
		t.Errorf("View() = %q, want it to contain the result", view)
	}
}

func TestSpinnerModel_DoneRendersError(t *testing.T) {
	m := NewSpinner("working")

	updated, _ := m.Update(spinnerDoneMsg{err: errors.New("engine unreachable")})
	sm := updated.(SpinnerModel)

	if view := sm.View(); !strings.Contains(view, "engine unreachable") {
		t.Errorf("View() = %q, want it to contain the error", view)
	}
}
