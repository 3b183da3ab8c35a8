package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/user/article-backup/internal/entity"
)

func printSummary(out io.Writer, s *entity.RunSummary) {
	if s == nil {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Backup Summary")
	t.AppendRows([]table.Row{
		{"Run ID", s.RunID},
		{"Account", s.Account},
		{"State", s.State},
		{"Listed", s.Listed},
		{"Written", s.Written},
		{"Failed", s.Failed},
		{"File", s.OutputPath},
	})
	if s.Error != "" {
		t.AppendRow(table.Row{"Error", s.Error})
	}
	t.Render()

	if len(s.Failures) == 0 {
		return
	}

	ft := table.NewWriter()
	ft.SetOutputMirror(out)
	ft.SetTitle("Skipped Posts")
	ft.AppendHeader(table.Row{"No", "URL", "Outcome", "Reason"})
	for _, f := range s.Failures {
		ft.AppendRow(table.Row{f.SequenceNumber, f.Permalink, f.Status, f.Reason})
	}
	ft.Render()
}
