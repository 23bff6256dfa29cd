package assert_test

import (
	"strings"
	"testing"

	"github.com/journeo/coverd/src/assert"
)

// TestEqual makes sure that the Equal function works for various types of arguments.
func TestEqual(t *testing.T) {
	fakeT := &recordingT{}
	actual := int64(5)
	assert.Equal(fakeT, 5, actual)
	if len(fakeT.errors) != 0 {
		t.Errorf("expected Errorf not to be called for int64 and const expression")
	}
	if fakeT.helperCalls != 1 {
		t.Errorf("expected Helper() to be called on the testing type")
	}

	assert.Equal(fakeT, 10, actual)
	if len(fakeT.errors) != 1 {
		t.Errorf("expected Errorf to be called for different int64 values")
	}

	fakeT = &recordingT{}
	assert.Equal(fakeT, "test val", "test val")
	if len(fakeT.errors) != 0 {
		t.Errorf("expected Errorf not to be called for two string values")
	}

	fakeT = &recordingT{}
	assert.Equal(fakeT, 10, 12, "test formatting: %d", 123)
	if len(fakeT.errors) != 1 {
		t.Fatalf("expected Errorf to be called for two different integers")
	}

	logged := fakeT.errors[0]
	if !strings.Contains(logged, "test formatting: 123") {
		t.Errorf("message `%s` did not contain the formatted message", logged)
	}
	if !strings.Contains(logged, "10") || !strings.Contains(logged, "12") {
		t.Errorf("message `%s` did not contain the compared values", logged)
	}
}

// TestEqualPanicsOnWrongArgs makes sure that Equal panics when the first argument
// after expected and actual is not a string.
func TestEqualPanicsOnWrongArgs(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected the test to panic because of wrong arguments")
		}
	}()

	assert.Equal(&recordingT{}, 5, 12, 123, "baba")
}
