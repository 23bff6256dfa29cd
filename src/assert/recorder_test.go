package assert_test

import "fmt"

// recordingT implements both assert.TestingErrf and assert.TestingFatalf and
// remembers how it was called.
type recordingT struct {
	helperCalls int
	errors      []string
	fatals      []string
}

func (r *recordingT) Helper() {
	r.helperCalls++
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}
