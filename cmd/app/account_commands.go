package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/honeydid/honeydid/cmd/app/commands"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "app-password",
			Usage: "Manage the app password",
			Commands: []*cli.Command{
				{
					Name:  "set",
					Usage: "Set the app password",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
							return commands.RunAppPasswordSet(ctx, uc, logger, commands.DefaultIO())
						})
					},
				},
				{
					Name:  "verify",
					Usage: "Check a password against the app password",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
							return commands.RunAppPasswordVerify(ctx, uc, logger, commands.DefaultIO())
						})
					},
				},
				{
					Name:  "change",
					Usage: "Change the app password",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
							return commands.RunAppPasswordChange(ctx, uc, logger, commands.DefaultIO())
						})
					},
				},
				{
					Name:  "status",
					Usage: "Show whether an app password is set",
					Flags: []cli.Flag{formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, _ *slog.Logger) error {
							return commands.RunAppPasswordStatus(ctx, uc, cmd.String("format"), commands.DefaultIO())
						})
					},
				},
			},
		},
		{
			Name:  "clear",
			Usage: "Delete all local data",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunClear(ctx, uc, logger, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "force-clear",
			Usage: "Delete all local data without the app password",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
					return commands.RunForceClear(ctx, uc, logger, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "settings",
			Usage: "Manage settings",
			Commands: []*cli.Command{
				{
					Name:      "clear-on-exit",
					Usage:     "Show or change whether local data is deleted when the server stops",
					ArgsUsage: "[on|off]",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withDocumentUseCase(ctx, func(uc documentUseCase.DocumentUseCase, logger *slog.Logger) error {
							return commands.RunSettingsClearOnExit(
								ctx,
								uc,
								logger,
								cmd.Args().First(),
								commands.DefaultIO(),
							)
						})
					},
				},
			},
		},
	}
}
