package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommands_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "extract without --in", args: []string{"extract"}, errorString: "required"},
		{name: "inspect without --in", args: []string{"inspect"}, errorString: "required"},
		{name: "tailor without --job", args: []string{"tailor", "--resume", "r.json"}, errorString: "required"},
		{name: "analyze without --resume", args: []string{"analyze", "--job", "j.json"}, errorString: "required"},
		{name: "batch without --out-dir", args: []string{"batch", "--dir", "."}, errorString: "required"},
		{name: "scrape-job without source", args: []string{"scrape-job"}, errorString: "one of --url or --html"},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"extract", "inspect", "tailor", "analyze", "scrape-job", "batch", "serve"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestLoadAppConfig_LogLevelOverride(t *testing.T) {
	resetFlags(t)
	t.Setenv("LOG_LEVEL", "warn")
	logLevel = "debug"
	t.Cleanup(func() { logLevel = "" })

	assert.NoError(t, loadAppConfig(nil, nil))
	assert.Equal(t, "debug", appConfig.Log.Level)
}
