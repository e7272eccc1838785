package main

import (
	"testing"
)

func TestMigrateCmd_Subcommands(t *testing.T) {
	cmd := migrateCmd()
	want := map[string]bool{"up": false, "status": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("migrate is missing the %q subcommand", name)
		}
	}
}

func TestMigrateCmd_DirFlagDefault(t *testing.T) {
	cmd := migrateCmd()
	for _, sub := range cmd.Commands() {
		f := sub.Flags().Lookup("dir")
		if f == nil {
			t.Errorf("%s has no --dir flag", sub.Name())
			continue
		}
		if f.DefValue != "./migrations" {
			t.Errorf("%s --dir default = %q, want ./migrations", sub.Name(), f.DefValue)
		}
	}
}

func TestLinkCmd_RequiresSubject(t *testing.T) {
	cmd := linkCmd()
	cmd.SetArgs([]string{"--patient-id", "p42"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error when --subject is missing")
	}
}

func TestLinkCmd_Flags(t *testing.T) {
	cmd := linkCmd()
	for _, name := range []string{"subject", "email", "patient-id"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("link is missing the --%s flag", name)
		}
	}
}
