package proc

import "fmt"

// FakeRunner is a test double that returns preset results and records calls.
type FakeRunner struct {
	Results map[string]Result
	Calls   []RunOpts
}

// Key builds the lookup key used by FakeRunner for a given invocation.
func Key(dir, name string, args ...string) string {
	return fmt.Sprintf("%s:%s %v", dir, name, args)
}

func (r *FakeRunner) Run(opts RunOpts) Result {
	r.Calls = append(r.Calls, opts)
	key := Key(opts.Dir, opts.Name, opts.Args...)
	if res, ok := r.Results[key]; ok {
		return res
	}
	return Result{
		Stderr:   fmt.Sprintf("FakeRunner: no result for key %q", key),
		ExitCode: 1,
	}
}

// Stub registers a result for one invocation.
func (r *FakeRunner) Stub(dir, name string, args []string, res Result) {
	if r.Results == nil {
		r.Results = map[string]Result{}
	}
	r.Results[Key(dir, name, args...)] = res
}

// StubOK registers a zero-exit result with the given stdout.
func (r *FakeRunner) StubOK(dir, name string, args []string, stdout string) {
	r.Stub(dir, name, args, Result{Stdout: stdout})
}

// StubFail registers a failing result with the given stderr.
func (r *FakeRunner) StubFail(dir, name string, args []string, stderr string) {
	r.Stub(dir, name, args, Result{Stderr: stderr, ExitCode: 1})
}
