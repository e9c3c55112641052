package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/display"
	"github.com/lox/adna/internal/history"
)

// HistoryCmd is the root command for game record utilities
type HistoryCmd struct {
	Show   HistoryShowCmd   `cmd:"" help:"Print a saved game record move by move"`
	Verify HistoryVerifyCmd `cmd:"" help:"Replay a bot-only record from its seed and check it matches"`
}

// HistoryShowCmd prints a record as sentences
type HistoryShowCmd struct {
	File string `arg:"" name:"file" type:"existingfile" help:"Path to a .adna.toml record"`
}

func (cmd HistoryShowCmd) Run(g *Globals) error {
	rec, err := history.Load(cmd.File)
	if err != nil {
		return err
	}
	return showRecord(os.Stdout, rec, !g.NoColor)
}

func showRecord(out io.Writer, rec *history.Record, color bool) error {
	theme := display.NewTheme(out, color)

	fmt.Fprintln(out, theme.Header.Render(fmt.Sprintf(" Game %s ", rec.Game)))
	if rec.Time != "" {
		fmt.Fprintf(out, "Played %s with seed %d\n", rec.Timestamp.Local().Format("2006-01-02 15:04"), rec.Seed)
	} else {
		fmt.Fprintf(out, "Seed %d\n", rec.Seed)
	}
	for i, name := range rec.Players {
		policy := ""
		if i < len(rec.Policies) {
			policy = rec.Policies[i]
		}
		fmt.Fprintf(out, "  %s: %s\n", theme.Seat.Render(name), policy)
	}
	if top, err := card.ParseCard(rec.Start); err == nil {
		fmt.Fprintf(out, "Top of the pile: %s\n", theme.Card(top))
	}
	fmt.Fprintln(out)

	for _, action := range rec.Actions {
		fmt.Fprintln(out, history.Describe(action, rec.Players))
	}

	fmt.Fprintln(out)
	switch {
	case rec.Winner != "":
		fmt.Fprintln(out, theme.Success.Render(fmt.Sprintf("%s wins after %d turns!", rec.Winner, rec.Turns)))
	default:
		fmt.Fprintln(out, theme.Error.Render(fmt.Sprintf("No winner (%s) after %d turns", rec.Reason, rec.Turns)))
	}
	return nil
}

// HistoryVerifyCmd replays a record and compares every action
type HistoryVerifyCmd struct {
	Files []string `arg:"" name:"file" type:"existingfile" help:"Records to verify"`
}

func (cmd HistoryVerifyCmd) Run() error {
	var failed []error
	for _, path := range cmd.Files {
		rec, err := history.Load(path)
		if err == nil {
			err = history.Verify(rec, log.New(io.Discard))
		}
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Printf("%s: ok (%d actions)\n", path, len(rec.Actions))
	}
	return errors.Join(failed...)
}
