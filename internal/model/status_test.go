package model

import "testing"

func TestRunState_IsActive(t *testing.T) {
	tests := []struct {
		state    RunState
		expected bool
	}{
		{RunStateNotStarted, false},
		{RunStateRunning, true},
		{RunStateCancelled, false},
		{RunStateCompleted, false},
		{RunStateBlocked, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("RunState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestRunState_IsFinished(t *testing.T) {
	tests := []struct {
		state    RunState
		expected bool
	}{
		{RunStateNotStarted, false},
		{RunStateRunning, false},
		{RunStateCancelled, true},
		{RunStateCompleted, true},
		{RunStateBlocked, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("RunState(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestVideoStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   VideoStatus
		expected bool
	}{
		{VideoStatusPending, false},
		{VideoStatusDownloading, false},
		{VideoStatusCompleted, true},
		{VideoStatusError, true},
	}

	for _, test := range tests {
		if got := test.status.IsFinished(); got != test.expected {
			t.Errorf("VideoStatus(%s).IsFinished() = %v, expected %v", test.status, got, test.expected)
		}
	}
}
