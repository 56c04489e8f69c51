package stkeys

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stkeys/stkeys/internal/config"
	"github.com/stkeys/stkeys/internal/engine"
	"github.com/stkeys/stkeys/internal/ssid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no global config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("CI", "1")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.String(), errOut.String(), err
}

func TestCLI_UsageOnWrongArgCount(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{{}, {"2A792E", "5", "5", "9"}} {
		out, _, err := execute(t, args...)
		require.NoError(t, err)
		assert.Equal(t, "Usage: stkeys <SSID> [start year] [end year]\n", out)
	}
}

func TestCLI_FindsKnownKey(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "2a792e", "5", "5")
	require.NoError(t, err)
	assert.Equal(t, "5CDBA2AAE9\n", out)
}

func TestCLI_ParallelKeepsKeys(t *testing.T) {
	isolate(t)
	seq, _, err := execute(t, "792E", "5", "5")
	require.NoError(t, err)
	par, _, err := execute(t, "--threads", "4", "792E", "5", "5")
	require.NoError(t, err)

	seqLines := strings.Split(strings.TrimSpace(seq), "\n")
	parLines := strings.Split(strings.TrimSpace(par), "\n")
	assert.Len(t, seqLines, 41)
	assert.ElementsMatch(t, seqLines, parLines)
	for _, l := range seqLines {
		assert.Len(t, l, 10)
		assert.Equal(t, strings.ToUpper(l), l)
	}
}

func TestCLI_InvalidSSID(t *testing.T) {
	isolate(t)
	tests := []struct {
		ssid string
		want error
		msg  string
	}{
		{ssid: "ABC", want: ssid.ErrInvalidLength, msg: "Invalid SSID length"},
		{ssid: strings.Repeat("AB", 21), want: ssid.ErrInvalidLength, msg: "Invalid SSID length"},
		{ssid: "F8A3DZ", want: ssid.ErrInvalidCharacter, msg: "Invalid SSID"},
	}
	for _, tt := range tests {
		out, _, err := execute(t, tt.ssid)
		require.ErrorIs(t, err, tt.want)
		assert.Equal(t, tt.msg, errorMessage(err))
		assert.Empty(t, out)
	}
}

func TestCLI_InvalidYear(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "2A792E", "five")
	require.Error(t, err)
	assert.Contains(t, errorMessage(err), "invalid year")
}

func TestCLI_InvertedRangeIsEmpty(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "", "10", "2")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCLI_JSON(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "--json", "2A792E", "5", "5")
	require.NoError(t, err)
	var arr []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "CP0512ABC", arr[0]["serial"])
	assert.Equal(t, "5CDBA2AAE9", arr[0]["key"])
}

func TestCLI_Table(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "--table", "2A792E", "5", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "CP0512ABC")
	assert.Contains(t, out, "5CDBA2AAE9")
}

func TestCLI_KeySizeAndSummary(t *testing.T) {
	isolate(t)
	out, errOut, err := execute(t, "--key-size", "8", "--summary", "--no-color", "2A792E", "5", "5")
	require.NoError(t, err)
	assert.Equal(t, "5CDBA2AAE9183DAD\n", out)
	assert.Contains(t, errOut, "Candidates tested: 2426112")
	assert.Contains(t, errOut, "Matches: 1")

	for _, size := range []string{"0", "21", "-3"} {
		out, _, err = execute(t, "--key-size", size, "2A792E", "5", "5")
		require.ErrorIs(t, err, engine.ErrInvalidConfig, "key size %s", size)
		assert.Empty(t, out)
	}
}

func TestCLI_NegativeYears(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "B84AB3", "-1", "-1")
	require.NoError(t, err)
	assert.Equal(t, "9A3DC8450C\n", out)

	out, _, err = execute(t, "--threads", "2", "B84AB3", "-1", "-1")
	require.NoError(t, err)
	assert.Equal(t, "9A3DC8450C\n", out)
}

func TestCLI_LocalConfigSetsRange(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stkeys.yml"), []byte("start_year: 5\nend_year: 5\nformat: json\n"), 0o644))

	out, _, err := execute(t, "2A792E")
	require.NoError(t, err)
	assert.Contains(t, out, `"key": "5CDBA2AAE9"`)

	// positional years override the file
	out, _, err = execute(t, "2A792E", "6", "6")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestCLI_ConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	out, _, err := execute(t, "config", "init", "--start-year", "3", "--end-year", "7", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote .stkeys.yml")

	fc, err := config.LoadFile(filepath.Join(dir, ".stkeys.yml"))
	require.NoError(t, err)
	require.NotNil(t, fc.StartYear)
	assert.Equal(t, 3, *fc.StartYear)
	require.NotNil(t, fc.Format)
	assert.Equal(t, "table", *fc.Format)

	_, _, err = execute(t, "config", "init")
	assert.Error(t, err, "existing file must not be overwritten without --force")

	out, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "end_year: 7")
	assert.Contains(t, out, "key_size: 5")
}

func TestCLI_Version(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stkeys v"+version+"\n", out)
}

func TestCLI_Completion(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "stkeys")

	out, _, err = execute(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef stkeys")
}

func TestCLI_CompletesYearArgs(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, cobra.ShellCompRequestCmd, "2A792E", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", ":4"}, strings.Split(strings.TrimSpace(out), "\n"))

	out, _, err = execute(t, cobra.ShellCompRequestCmd, "2A792E", "5", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", ":4"}, strings.Split(strings.TrimSpace(out), "\n"))
}
