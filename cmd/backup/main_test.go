package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/article-backup/internal/entity"
)

func TestRootCmdRequiresThreeArgs(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"alice@example.com"},
		{"alice@example.com", "secret"},
		{"alice@example.com", "secret", "alice", "extra"},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		require.Error(t, cmd.Execute(), "args %v", args)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &entity.RunSummary{
		RunStatus: entity.RunStatus{
			RunID:      "run-1",
			Account:    "alice",
			State:      entity.RunCompleted,
			Listed:     3,
			Written:    2,
			Failed:     1,
			OutputPath: "backup/[2024-05-01_09h07m]Qiita-backup.csv",
		},
		Failures: []entity.PostFailure{{
			SequenceNumber: "0002",
			Permalink:      "https://qiita.com/alice/items/b",
			Status:         entity.ExtractionNotFound,
			Reason:         "element not found",
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "backup/[2024-05-01_09h07m]Qiita-backup.csv")
	assert.Contains(t, out, "https://qiita.com/alice/items/b")
	assert.Contains(t, out, "not_found")
}

func TestPrintSummaryNil(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, nil)
	assert.Empty(t, buf.String())
}
