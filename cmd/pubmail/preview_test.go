package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand_PrintsRecord(t *testing.T) {
	_, args := fixtures(t)

	opts := &previewOptions{}
	cmd, stdout, _ := newTestCommand(t, opts.configFlags.register, args...)
	opts.index = 2

	require.NoError(t, runPreview(cmd, opts))

	output := stdout.String()
	assert.Contains(t, output, "E-MAIL PREVIEW")
	assert.Contains(t, output, "Record:  #2 10.1/a")
	assert.Contains(t, output, "k.lee@example.edu, j.park@example.edu")
	assert.Contains(t, output, "Dear Dr. Lee and Dr. Park,")
	assert.Contains(t, output, "Your 2019 paper, Pulsar timing, is cited 12.5 times a year (50 in total).")
	assert.NotContains(t, output, "<p>")
}

func TestPreviewCommand_IndexOutOfRange(t *testing.T) {
	_, args := fixtures(t)

	opts := &previewOptions{}
	cmd, _, _ := newTestCommand(t, opts.configFlags.register, args...)
	opts.index = 4

	err := runPreview(cmd, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--index 4 is out of range: 3 records ranked")
}

func TestPreviewCommand_WithoutSender(t *testing.T) {
	_, args := fixtures(t)

	opts := &previewOptions{}
	cmd, stdout, _ := newTestCommand(t, opts.configFlags.register, withoutFlags(args, "from")...)
	opts.index = 1

	require.NoError(t, runPreview(cmd, opts))
	assert.Contains(t, stdout.String(), "Record:  #1 10.1/b")
}

func TestPreviewCommand_RequiresTemplate(t *testing.T) {
	_, args := fixtures(t)

	opts := &previewOptions{}
	cmd, _, _ := newTestCommand(t, opts.configFlags.register, withoutFlags(args, "template")...)
	opts.index = 1

	err := runPreview(cmd, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template")
}
