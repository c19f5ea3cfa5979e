package terminal

import (
	"testing"

	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/proc"
)

func TestTmuxOpenWindowTwoFrames(t *testing.T) {
	runner := &proc.FakeRunner{}
	runner.StubOK("", "tmux", []string{"new-window", "-n", "#42 Add feature", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "%5\n")
	runner.StubOK("", "tmux", []string{"send-keys", "-t", "%5", "nvim .", "Enter"}, "")
	runner.StubOK("", "tmux", []string{"split-window", "-h", "-t", "%5", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "%6\n")
	runner.StubOK("", "tmux", []string{"send-keys", "-t", "%6", "claude", "Enter"}, "")

	adapter := &TmuxAdapter{Runner: runner}
	ok := adapter.OpenWindow(WindowSpec{
		Title: "#42 Add feature",
		Frames: []model.Frame{
			{Directory: "/wt", Command: "nvim ."},
			{Directory: "/wt", Command: "claude"},
		},
	})

	if !ok {
		t.Fatal("OpenWindow = false, want true")
	}
	if len(runner.Calls) != 4 {
		t.Errorf("ran %d tmux commands, want 4", len(runner.Calls))
	}
}

func TestTmuxOpenWindowStartsServerWhenNeeded(t *testing.T) {
	runner := &proc.FakeRunner{}
	runner.StubFail("", "tmux", []string{"new-window", "-n", "dev", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "no server running")
	runner.StubOK("", "tmux", []string{"new-session", "-d", "-n", "dev", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "%0\n")

	adapter := &TmuxAdapter{Runner: runner}
	ok := adapter.OpenWindow(WindowSpec{
		Title:  "dev",
		Frames: []model.Frame{{Directory: "/wt"}},
	})

	if !ok {
		t.Fatal("OpenWindow = false, want true")
	}
}

func TestTmuxOpenWindowFailure(t *testing.T) {
	runner := &proc.FakeRunner{}
	runner.StubFail("", "tmux", []string{"new-window", "-n", "dev", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "no server running")
	runner.StubFail("", "tmux", []string{"new-session", "-d", "-n", "dev", "-c", "/wt", "-P", "-F", "#{pane_id}"}, "error creating session")

	adapter := &TmuxAdapter{Runner: runner}
	if adapter.OpenWindow(WindowSpec{Title: "dev", Frames: []model.Frame{{Directory: "/wt"}}}) {
		t.Error("OpenWindow = true, want false")
	}
}

func TestTmuxCloseByTitle(t *testing.T) {
	listArgs := []string{"list-windows", "-a", "-F", "#{window_id}\t#{window_name}"}

	t.Run("substring match closes first window", func(t *testing.T) {
		runner := &proc.FakeRunner{}
		runner.StubOK("", "tmux", listArgs, "@1\tmain\n@2\t#42 Add feature\n@3\t#42 Add feature\n")
		runner.StubOK("", "tmux", []string{"kill-window", "-t", "@2"}, "")

		adapter := &TmuxAdapter{Runner: runner}
		if !adapter.CloseByTitle("#42") {
			t.Error("CloseByTitle = false, want true")
		}
		if len(runner.Calls) != 2 {
			t.Errorf("ran %d commands, want 2 (list + single kill)", len(runner.Calls))
		}
	})

	t.Run("no match", func(t *testing.T) {
		runner := &proc.FakeRunner{}
		runner.StubOK("", "tmux", listArgs, "@1\tmain\n")

		adapter := &TmuxAdapter{Runner: runner}
		if adapter.CloseByTitle("#42") {
			t.Error("CloseByTitle = true, want false")
		}
	})

	t.Run("list failure", func(t *testing.T) {
		runner := &proc.FakeRunner{}
		runner.StubFail("", "tmux", listArgs, "no server running")

		adapter := &TmuxAdapter{Runner: runner}
		if adapter.CloseByTitle("#42") {
			t.Error("CloseByTitle = true, want false")
		}
	})
}
