package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/honeydid/honeydid/cmd/app/commands"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

func getExportCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "export",
			Usage: "Export the working document as an HTML file protected by a passphrase",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "passphrase",
					Aliases: []string{"p"},
					Usage:   "Passphrase for the file (omit to be prompted)",
				},
				&cli.BoolFlag{
					Name:    "generate",
					Aliases: []string{"g"},
					Usage:   "Generate a random word passphrase",
				},
				&cli.BoolFlag{
					Name:  "copy",
					Usage: "Copy the generated passphrase to the clipboard",
				},
				&cli.BoolFlag{
					Name:  "include-welcome",
					Usage: "Show the welcome messages before the passphrase box",
				},
				outputFlag("Destination file (omit to be prompted)"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				input := commands.ExportInput{
					Passphrase:     cmd.String("passphrase"),
					Generate:       cmd.Bool("generate"),
					Copy:           cmd.Bool("copy"),
					IncludeWelcome: cmd.Bool("include-welcome"),
					Output:         cmd.String("output"),
				}
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunExport(ctx, uc, logger, input, commands.CopyToClipboard, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "export-questions",
			Usage: "Export the working document as an HTML file unlocked by answering questions",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "slides",
					Usage: "JSON array of slides to use instead of the welcome screen slides",
				},
				&cli.StringFlag{
					Name:  "fallback-passphrase",
					Usage: "Passphrase that also opens the file",
				},
				&cli.BoolFlag{
					Name:  "include-welcome",
					Usage: "Keep the message slides in the unlock sequence",
				},
				outputFlag("Destination file (omit to be prompted)"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunExportQuestions(
						ctx,
						uc,
						logger,
						cmd.String("slides"),
						cmd.String("fallback-passphrase"),
						cmd.Bool("include-welcome"),
						cmd.String("output"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:      "import",
			Usage:     "Open an exported HTML file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "passphrase",
					Aliases: []string{"p"},
					Usage:   "Passphrase of the file (omit to be prompted)",
				},
				&cli.BoolFlag{
					Name:  "replace",
					Usage: "Make the opened document the working document",
				},
				&cli.BoolFlag{
					Name:  "merge",
					Usage: "Add the entries of the opened document to the working document",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return errors.New("import requires exactly one file argument")
				}
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunImport(
						ctx,
						uc,
						logger,
						cmd.Args().First(),
						cmd.String("passphrase"),
						cmd.Bool("replace"),
						cmd.Bool("merge"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "recovery-card",
			Usage: "Render a printable card with a passphrase and its QR code",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "passphrase",
					Aliases: []string{"p"},
					Usage:   "Passphrase to print (omit to be prompted)",
				},
				&cli.StringFlag{
					Name:  "file-name",
					Usage: "Name of the exported file the passphrase opens",
				},
				outputFlag("File to write (default: stdout)"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunRecoveryCard(
						ctx,
						uc,
						logger,
						cmd.String("passphrase"),
						cmd.String("file-name"),
						cmd.String("output"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "passphrase",
			Usage: "Generate a random word passphrase",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "copy",
					Usage: "Copy the passphrase to the clipboard",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunPassphrase(
						ctx,
						uc,
						logger,
						cmd.Bool("copy"),
						commands.CopyToClipboard,
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
