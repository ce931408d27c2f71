package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdRejectsBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single positional", []string{"30"}, "unexpected number of arguments"},
		{"too many positionals", []string{"30", "2", "log", "extra"}, "unexpected number of arguments"},
		{"interval too small", []string{"5", "2"}, "must be > 5"},
		{"zero samples", []string{"10", "0"}, "num_samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
			if !strings.Contains(out.String(), "Usage:") {
				t.Errorf("expected usage output, got %q", out.String())
			}
		})
	}
}
