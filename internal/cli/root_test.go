package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd("test")

	want := []string{"list", "summon", "banish", "lock", "unlock", "prune", "doctor"}
	registered := map[string]bool{}
	for _, sub := range cmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestSummonRejectsInvalidTargets(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no flags",
			args:    []string{"summon"},
			wantErr: "exactly one of --issue or --branch",
		},
		{
			name:    "both flags",
			args:    []string{"summon", "--issue", "42", "--branch", "fix-login"},
			wantErr: "exactly one of --issue or --branch",
		},
		{
			name:    "negative issue number",
			args:    []string{"summon", "--issue=-5"},
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd("test")
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
