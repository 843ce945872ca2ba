package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockExec is a mock implementation of the execIface interface that
// records which commands the REPL dispatched.
type mockExec struct {
	loggedIn bool
	calls    []string
	error    error
}

func (m *mockExec) isLoggedIn() bool { return m.loggedIn }

func (m *mockExec) record(name string) error {
	m.calls = append(m.calls, name)
	return m.error
}

func (m *mockExec) Login(_ context.Context) error      { return m.record("login") }
func (m *mockExec) Logout(_ context.Context) error     { return m.record("logout") }
func (m *mockExec) Profile(_ context.Context) error    { return m.record("profile") }
func (m *mockExec) List(_ context.Context) error       { return m.record("list") }
func (m *mockExec) Categories(_ context.Context) error { return m.record("categories") }
func (m *mockExec) Add(_ context.Context) error        { return m.record("add") }
func (m *mockExec) Edit(_ context.Context) error       { return m.record("edit") }
func (m *mockExec) Delete(_ context.Context) error     { return m.record("delete") }

func runWithInput(t *testing.T, exec *mockExec, input string) string {
	t.Helper()
	var out bytes.Buffer
	statusFn := func() string {
		if exec.loggedIn {
			return "logged in"
		}
		return "guest"
	}
	runREPL(context.Background(), exec, statusFn, bufio.NewReader(strings.NewReader(input)), &out)
	return out.String()
}

func Test_runREPL_Dispatch(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectCalls []string
	}{
		{
			name:        "Success - single command",
			input:       "list\nexit\n",
			expectCalls: []string{"list"},
		},
		{
			name:        "Success - several commands in order",
			input:       "login\nlist\nadd\nlogout\nquit\n",
			expectCalls: []string{"login", "list", "add", "logout"},
		},
		{
			name:        "Success - blank lines are skipped",
			input:       "\n   \nprofile\nexit\n",
			expectCalls: []string{"profile"},
		},
		{
			name:        "Success - EOF ends the loop",
			input:       "categories\n",
			expectCalls: []string{"categories"},
		},
		{
			name:        "Success - edit and delete",
			input:       "edit\ndelete\nexit\n",
			expectCalls: []string{"edit", "delete"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			exec := &mockExec{loggedIn: true}
			// when
			runWithInput(t, exec, tc.input)
			// then
			assert.Equal(t, tc.expectCalls, exec.calls)
		})
	}
}

func Test_runREPL_UnknownCommand(t *testing.T) {
	// given
	exec := &mockExec{}
	// when
	out := runWithInput(t, exec, "frobnicate\nexit\n")
	// then
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Empty(t, exec.calls)
}

func Test_runREPL_CommandErrorDoesNotStopLoop(t *testing.T) {
	// given: every command fails
	exec := &mockExec{loggedIn: true, error: errors.New("backend gone")}
	// when
	out := runWithInput(t, exec, "list\nprofile\nexit\n")
	// then: both commands ran and both errors were printed
	assert.Equal(t, []string{"list", "profile"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "error: backend gone"))
}

func Test_runREPL_HelpVariesByLoginState(t *testing.T) {
	// given / when
	guestOut := runWithInput(t, &mockExec{loggedIn: false}, "help\nexit\n")
	userOut := runWithInput(t, &mockExec{loggedIn: true}, "help\nexit\n")
	// then
	assert.Contains(t, guestOut, "login, exit")
	assert.NotContains(t, guestOut, "delete")
	assert.Contains(t, userOut, "list, add, edit, delete")
}

func Test_runREPL_PromptShowsStatus(t *testing.T) {
	out := runWithInput(t, &mockExec{loggedIn: true}, "exit\n")
	assert.Contains(t, out, "prodadmin (logged in)> ")
}

func Test_runREPL_ContextCancelled(t *testing.T) {
	// given
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &mockExec{}
	var out bytes.Buffer
	// when: the loop must return without dispatching anything
	runREPL(ctx, exec, func() string { return "guest" }, bufio.NewReader(strings.NewReader("list\n")), &out)
	// then
	assert.Empty(t, exec.calls)
}
