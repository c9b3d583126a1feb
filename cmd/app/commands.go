package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/honeydid/honeydid/internal/app"
	"github.com/honeydid/honeydid/internal/config"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getDocumentCommands()...)
	cmds = append(cmds, getExportCommands()...)
	cmds = append(cmds, getAccountCommands()...)
	return cmds
}

// withDocumentUseCase builds the container for a single command and hands its document use case to
// run.
func withDocumentUseCase(
	ctx context.Context,
	run func(documentUseCase.DocumentUseCase, *slog.Logger) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.DocumentUseCase(ctx)
	if err != nil {
		return err
	}

	return run(useCase, container.Logger())
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func outputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   usage,
	}
}
