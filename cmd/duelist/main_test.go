package main

import "testing"

func TestLaunchesTUI(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args", args: nil, want: true},
		{name: "tui subcommand", args: []string{"tui"}, want: true},
		{name: "list", args: []string{"ls"}, want: false},
		{name: "text that says tui", args: []string{"add", "tui"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := launchesTUI(tt.args); got != tt.want {
				t.Errorf("launchesTUI(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "help subcommand", args: []string{"help", "add"}, want: true},
		{name: "subcommand help", args: []string{"add", "-h"}, want: true},
		{name: "config alone", args: []string{"config"}, want: true},
		{name: "config template", args: []string{"config", "template"}, want: true},
		{name: "config keygen", args: []string{"config", "keygen"}, want: true},
		{name: "config show", args: []string{"config", "show"}, want: false},
		{name: "list", args: []string{"ls"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canRunWithoutContainer(tt.args); got != tt.want {
				t.Errorf("canRunWithoutContainer(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
