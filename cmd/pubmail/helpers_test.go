package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fixturePublications = "DOI\tAuthors\tArticle Title\tEmail Addresses\tPublication Year\n" +
	"10.1/a\tLee, K.; Park, J.\tPulsar timing\tk.lee@example.edu; j.park@example.edu\t2019\n" +
	"10.1/b\tSmith, A.\tDark matter halos\ta.smith@example.edu\t2020\n" +
	"10.1/c\tWu, X.; Chen, Y.; Li, Z.; Zhao, Q.\tGalaxy surveys\t\t2018\n"

const fixtureCitations = "Citation report\nGenerated for testing\n" +
	"DOI\tTotal Citations\tAverage per Year\t2019\t2020\n" +
	"10.1/a\t50\t12.50\t3\t5\n" +
	"10.1/b\t20\t20\t0\t20\n" +
	"10.1/c\t30\t5.0\t4\t6\n"

const fixtureTemplate = `<html><body><p>Dear !AUTHOR_NAMES!,</p>
<p>Your !PAPER_YEAR! paper, !PAPER_TITLE!, is cited !CITPERYEAR! times a year (!TOTCIT! in total).</p></body></html>`

// fixtures writes a complete set of inputs and returns the flags that point at them
func fixtures(t *testing.T) (dir string, args []string) {
	t.Helper()
	dir = t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	args = []string{
		"--publications", write("savedrecs.txt", fixturePublications),
		"--citation-reports", write("citation_report.txt", fixtureCitations),
		"--skip-rows", "2",
		"--template", write("template.html", fixtureTemplate),
		"--from", "editor@example.org",
		"--log-level", "error",
	}
	return dir, args
}

// withoutFlags drops each named flag and its value from args
func withoutFlags(args []string, names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop["--"+n] = true
	}
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if drop[args[i]] {
			i++
			continue
		}
		out = append(out, args[i])
	}
	return out
}

// newTestCommand builds a fresh command with flags registered by register, parses args
// and captures its output
func newTestCommand(t *testing.T, register func(*cobra.Command), args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	register(cmd)
	require.NoError(t, cmd.ParseFlags(args))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}
