package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/honeydid/honeydid/cmd/app/commands"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

func getDocumentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "show",
			Usage: "Show the working document",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunShow(ctx, uc, logger, cmd.String("format"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "edit",
			Usage: "Replace the working document with a JSON document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "JSON document to load ('-' reads stdin)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunEdit(ctx, uc, logger, cmd.String("file"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "print",
			Usage: "Render the working document as unencrypted printable HTML",
			Flags: []cli.Flag{outputFlag("File to write (default: stdout)")},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunPrint(ctx, uc, logger, cmd.String("output"), commands.DefaultIO())
				})
			},
		},
	}
}
