package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/riskibarqy/tournament-registration/internal/app"
	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/interfaces/signupsheet"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

// signupsheet writes one HTML sign-up sheet per team, read either from an
// exported JSON file (-teams) or from the configured store (-store).
func main() {
	teamsFile := flag.String("teams", "", "JSON array of exported team documents")
	fromStore := flag.Bool("store", false, "read teams from the configured store")
	selector := flag.String("team", "", "only render the team with this id or name")
	outDir := flag.String("out", "generated-sheets", "output directory")
	logoPath := flag.String("logo", "", "optional PNG logo")
	event := flag.String("event", "", "event name printed in the header")
	flag.Parse()

	logger := logging.NewJSON(logging.LevelInfo, logging.WithService("registration-signupsheet"))
	defer func() { _ = logger.Sync() }()

	sheets, err := loadSheets(*teamsFile, *fromStore, logger)
	if err != nil {
		logger.Error("load teams", "error", err)
		os.Exit(1)
	}
	sheets = signupsheet.Filter(sheets, *selector)
	if len(sheets) == 0 {
		logger.Error("no team matches", "team", *selector)
		os.Exit(1)
	}

	opts := []signupsheet.Option{signupsheet.WithEventName(*event)}
	if *logoPath != "" {
		png, err := os.ReadFile(*logoPath)
		if err != nil {
			logger.Warn("read logo, rendering without it", "path", *logoPath, "error", err)
		} else {
			opts = append(opts, signupsheet.WithLogoPNG(png))
		}
	}
	renderer := signupsheet.NewRenderer(opts...)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output dir", "dir", *outDir, "error", err)
		os.Exit(1)
	}
	for _, sheet := range sheets {
		path := filepath.Join(*outDir, signupsheet.FileName(sheet))
		if err := writeSheet(renderer, sheet, path); err != nil {
			logger.Error("write sheet", "team_id", sheet.TeamID, "error", err)
			os.Exit(1)
		}
		logger.Info("sheet written", "team_id", sheet.TeamID, "path", path)
	}
}

func loadSheets(teamsFile string, fromStore bool, logger *logging.Logger) ([]signupsheet.Sheet, error) {
	switch {
	case teamsFile != "":
		f, err := os.Open(teamsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return signupsheet.DecodeFile(f)
	case fromStore:
		return sheetsFromStore(logger)
	default:
		return nil, fmt.Errorf("provide -teams <file> or -store")
	}
}

func sheetsFromStore(logger *logging.Logger) ([]signupsheet.Sheet, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.NATSEnabled = false

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = application.Close(ctx) }()

	teams, err := application.Dashboard.ListTeams(ctx, usecase.ListTeamsInput{Status: team.FilterAll})
	if err != nil {
		return nil, err
	}
	out := make([]signupsheet.Sheet, 0, len(teams))
	for _, item := range teams {
		out = append(out, signupsheet.FromTeam(item))
	}
	return out, nil
}

func writeSheet(renderer *signupsheet.Renderer, sheet signupsheet.Sheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderer.Render(f, sheet); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
