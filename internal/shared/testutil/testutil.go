// Package testutil provides assertions on provider results shared by tests.
package testutil

import (
	"testing"

	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// AssertSuccess fails the test unless result is a successful result.
func AssertSuccess(t testing.TB, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		msg := "<nil>"
		if result.Error != nil {
			msg = *result.Error
		}
		t.Fatalf("Expected success, got error: %s", msg)
	}
}

// AssertFailure fails the test unless result is a failed result carrying an
// error message. It returns the message.
func AssertFailure(t testing.TB, result *types.Result) string {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected failure, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
	return *result.Error
}

// AssertDataField asserts a data field exists and equals expected.
func AssertDataField(t testing.TB, result *types.Result, field string, expected interface{}) {
	t.Helper()
	if result == nil || result.Data == nil {
		t.Fatal("Result data is nil")
	}

	actual, ok := result.Data[field]
	if !ok {
		t.Fatalf("Field %s not found in result data", field)
	}
	if actual != expected {
		t.Fatalf("Field %s: expected %v (%T), got %v (%T)", field, expected, expected, actual, actual)
	}
}
