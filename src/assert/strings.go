package assert

import "strings"

// Contains checks that `substr` is part of `s` and fails the test otherwise.
func Contains(t TestingErrf, s, substr string, msgAndArgs ...any) {
	t.Helper()

	if strings.Contains(s, substr) {
		return
	}

	t.Errorf("expected `%s` to contain `%s`%s", s, substr, fromMsgAndArgs(msgAndArgs...))
}

// NotContains checks that `substr` is not part of `s` and fails the test
// otherwise.
func NotContains(t TestingErrf, s, substr string, msgAndArgs ...any) {
	t.Helper()

	if !strings.Contains(s, substr) {
		return
	}

	t.Errorf("expected `%s` not to contain `%s`%s", s, substr,
		fromMsgAndArgs(msgAndArgs...),
	)
}
