package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	customValidation "github.com/honeydid/honeydid/internal/validation"
)

// RunAppPasswordSet sets the app password when none exists yet.
func RunAppPasswordSet(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	has, err := documentUseCase.HasAppPassword(ctx)
	if err != nil {
		return fmt.Errorf("failed to check app password: %w", err)
	}
	if has {
		printHint(io.Writer, "Use app-password change to replace it")
		return errors.New("app password already set")
	}

	password, err := newPrompter(io).confirmedSecret("New password: ", "Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := documentUseCase.SetAppPassword(ctx, password); err != nil {
		return fmt.Errorf("failed to set app password: %w", err)
	}

	logger.Info("app password set")
	printSuccess(io.Writer, "App password set")

	return nil
}

// RunAppPasswordVerify checks a password against the app password. An incorrect password is
// reported and returned as an error.
func RunAppPasswordVerify(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	password, err := newPrompter(io).secret("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	valid, err := documentUseCase.VerifyAppPassword(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to verify app password: %w", err)
	}
	if !valid {
		printFailure(io.Writer, "Incorrect password")
		return documentDomain.ErrIncorrectPassword
	}

	logger.Debug("app password verified")
	printSuccess(io.Writer, "Password is correct")

	return nil
}

// RunAppPasswordChange replaces the app password after checking the current one.
func RunAppPasswordChange(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	p := newPrompter(io)

	oldPassword, err := p.secret("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	newPassword, err := p.confirmedSecret("New password: ", "Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := documentUseCase.ChangeAppPassword(ctx, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change app password: %w", err)
	}

	logger.Info("app password changed")
	printSuccess(io.Writer, "App password changed")

	return nil
}

// RunAppPasswordStatus reports whether an app password is set.
func RunAppPasswordStatus(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	format string,
	io IOTuple,
) error {
	has, err := documentUseCase.HasAppPassword(ctx)
	if err != nil {
		return fmt.Errorf("failed to check app password: %w", err)
	}

	if format == "json" {
		return outputJSON(map[string]bool{"has_password": has}, io.Writer)
	}

	if has {
		_, _ = fmt.Fprintln(io.Writer, "App password: set")
	} else {
		_, _ = fmt.Fprintln(io.Writer, "App password: not set")
	}
	return nil
}

// RunClear deletes all local data. The app password is asked for when one is set; otherwise the
// user confirms the deletion.
func RunClear(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	p := newPrompter(io)

	has, err := documentUseCase.HasAppPassword(ctx)
	if err != nil {
		return fmt.Errorf("failed to check app password: %w", err)
	}

	var password string
	if has {
		password, err = p.secret("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	} else {
		ok, err := p.confirm("Delete all local data?")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			printWarning(io.Writer, "Nothing deleted")
			return nil
		}
	}

	if err := documentUseCase.ClearAll(ctx, password); err != nil {
		if errors.Is(err, documentDomain.ErrIncorrectPassword) {
			printFailure(io.Writer, "Incorrect password")
			printHint(io.Writer, "Use force-clear if the password is lost")
		}
		return fmt.Errorf("failed to clear data: %w", err)
	}

	logger.Info("local data cleared")
	printSuccess(io.Writer, "All local data deleted")

	return nil
}

// RunForceClear deletes all local data without the app password once the confirmation phrase is
// typed.
func RunForceClear(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	printWarning(io.Writer, "This deletes the working document, the app password and all settings.")

	confirmation, err := newPrompter(io).line(
		fmt.Sprintf("Type %q to confirm: ", customValidation.ForceClearPhrase),
	)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if err := documentUseCase.ForceClear(ctx, confirmation); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	logger.Info("local data force cleared")
	printSuccess(io.Writer, "All local data deleted")

	return nil
}

// RunSettingsClearOnExit shows the clear-on-exit setting, or sets it when value is "on" or "off".
func RunSettingsClearOnExit(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	value string,
	io IOTuple,
) error {
	var enabled bool
	switch value {
	case "":
		current, err := documentUseCase.GetClearOnExit(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		_, _ = fmt.Fprintf(io.Writer, "clear-on-exit: %s\n", onOff(current))
		return nil
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("invalid value: %s (valid options: on, off)", value)
	}

	if err := documentUseCase.SetClearOnExit(ctx, enabled); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("settings updated", slog.Bool("clear_on_exit", enabled))
	printSuccess(io.Writer, "clear-on-exit: %s", onOff(enabled))

	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
