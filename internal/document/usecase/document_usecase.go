package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
	exportService "github.com/honeydid/honeydid/internal/export/service"
	"github.com/honeydid/honeydid/internal/storage"
	customValidation "github.com/honeydid/honeydid/internal/validation"
)

// documentUseCase implements DocumentUseCase.
//
// mu serializes every operation that reads or writes the working document or the files next to it.
// Exports hold the lock for the duration of key derivation, so edits wait for an export in progress.
type documentUseCase struct {
	mu        sync.Mutex
	doc       *documentDomain.Document
	documents DocumentStore
	passwords PasswordStore
	settings  SettingsStore
	exporter  Exporter
	importer  Importer
	printer   Printer
	logger    *slog.Logger
	now       func() time.Time
	generate  func() (string, error)
}

// NewDocumentUseCase creates a DocumentUseCase.
func NewDocumentUseCase(
	documents DocumentStore,
	passwords PasswordStore,
	settings SettingsStore,
	exporter Exporter,
	importer Importer,
	printer Printer,
	logger *slog.Logger,
) DocumentUseCase {
	return &documentUseCase{
		documents: documents,
		passwords: passwords,
		settings:  settings,
		exporter:  exporter,
		importer:  importer,
		printer:   printer,
		logger:    logger,
		now:       time.Now,
		generate:  exportService.GeneratePassphrase,
	}
}

// Get returns a copy of the working document.
func (d *documentUseCase) Get(ctx context.Context) (*documentDomain.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return cloneDocument(doc)
}

// Update stamps doc, persists it and makes it the working document.
func (d *documentUseCase) Update(
	ctx context.Context,
	doc *documentDomain.Document,
) (*documentDomain.Document, error) {
	if doc == nil {
		return nil, documentDomain.ErrDocumentRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := cloneDocument(doc)
	if err != nil {
		return nil, err
	}
	next.Touch(d.now())

	if err := d.persist(ctx, next); err != nil {
		return nil, err
	}
	return cloneDocument(next)
}

// Replace persists imported unchanged, keeping its own timestamps.
func (d *documentUseCase) Replace(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	if imported == nil {
		return nil, documentDomain.ErrDocumentRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := cloneDocument(imported)
	if err != nil {
		return nil, err
	}
	if err := d.persist(ctx, next); err != nil {
		return nil, err
	}

	d.logger.Info("working document replaced by import")
	return cloneDocument(next)
}

// Merge folds imported into the working document and persists the result.
func (d *documentUseCase) Merge(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	if imported == nil {
		return nil, documentDomain.ErrDocumentRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	next, err := cloneDocument(doc)
	if err != nil {
		return nil, err
	}
	src, err := cloneDocument(imported)
	if err != nil {
		return nil, err
	}

	documentDomain.Merge(next, src)
	next.Touch(d.now())

	if err := d.persist(ctx, next); err != nil {
		return nil, err
	}

	d.logger.Info("imported document merged")
	return cloneDocument(next)
}

// ExportSingle exports the working document with a passphrase.
func (d *documentUseCase) ExportSingle(
	ctx context.Context,
	opts exportDomain.SingleOptions,
) (*exportDomain.Artifact, error) {
	if err := customValidation.WrapValidationError(customValidation.Passphrase.Validate(opts.Passphrase)); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return d.exporter.ExportSingle(ctx, doc, opts)
}

// ExportDualKey exports the working document for question unlock.
func (d *documentUseCase) ExportDualKey(
	ctx context.Context,
	opts exportDomain.DualKeyOptions,
) (*exportDomain.Artifact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return d.exporter.ExportDualKey(ctx, doc, opts)
}

// SaveExport writes artifact to the destination returned by chooser.
func (d *documentUseCase) SaveExport(
	ctx context.Context,
	artifact *exportDomain.Artifact,
	chooser exportDomain.DestinationChooser,
) (string, error) {
	if artifact == nil || chooser == nil {
		return "", fmt.Errorf("%w: nothing to save", exportDomain.ErrSaveFailed)
	}

	path, ok, err := chooser(ctx, artifact.FileName)
	if err != nil {
		return "", err
	}
	if !ok || path == "" {
		return "", exportDomain.ErrExportCancelled
	}

	if err := storage.WriteExport(path, artifact.HTML); err != nil {
		return "", fmt.Errorf("%w: %v", exportDomain.ErrSaveFailed, err)
	}

	d.logger.Info("export saved", slog.String("mode", string(artifact.Mode)))
	return path, nil
}

// Import opens an exported file. The working document is not modified.
func (d *documentUseCase) Import(
	ctx context.Context,
	html string,
	creds exportDomain.Credentials,
) (*documentDomain.Document, error) {
	if err := customValidation.WrapValidationError(customValidation.ImportContent.Validate(html)); err != nil {
		return nil, err
	}
	if creds.Passphrase != "" {
		if err := customValidation.WrapValidationError(
			customValidation.Passphrase.Validate(creds.Passphrase),
		); err != nil {
			return nil, err
		}
	}

	doc, err := d.importer.Import(ctx, html, creds)
	if err != nil {
		if cryptoDomain.IsDecryptionFailure(err) {
			d.logger.Warn("import failed", slog.String("reason", cryptoDomain.PublicMessage(err)))
		}
		return nil, err
	}
	return doc, nil
}

// Inspect reports how an exported file can be unlocked.
func (d *documentUseCase) Inspect(_ context.Context, html string) (*exportDomain.FileInfo, error) {
	if err := customValidation.WrapValidationError(customValidation.ImportContent.Validate(html)); err != nil {
		return nil, err
	}
	return d.importer.Inspect(html)
}

// Print renders the working document unencrypted.
func (d *documentUseCase) Print(ctx context.Context) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return d.printer.Print(doc)
}

// RecoveryCard renders a recovery card for passphrase.
func (d *documentUseCase) RecoveryCard(ctx context.Context, passphrase, fileName string) ([]byte, error) {
	if err := customValidation.WrapValidationError(customValidation.Passphrase.Validate(passphrase)); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return d.printer.RecoveryCard(doc, passphrase, fileName)
}

// GeneratePassphrase returns a random word passphrase.
func (d *documentUseCase) GeneratePassphrase(_ context.Context) (string, error) {
	return d.generate()
}

// SetAppPassword hashes and stores password, replacing any existing one.
func (d *documentUseCase) SetAppPassword(_ context.Context, password string) error {
	if err := customValidation.WrapValidationError(customValidation.AppPassword.Validate(password)); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.passwords.Set(password)
}

// VerifyAppPassword checks password against the stored hash.
func (d *documentUseCase) VerifyAppPassword(_ context.Context, password string) (bool, error) {
	if err := customValidation.WrapValidationError(customValidation.PasswordAttempt.Validate(password)); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.passwords.Verify(password)
}

// ChangeAppPassword replaces the app password after verifying the old one.
func (d *documentUseCase) ChangeAppPassword(_ context.Context, oldPassword, newPassword string) error {
	if err := customValidation.WrapValidationError(customValidation.AppPassword.Validate(newPassword)); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ok, err := d.passwords.Verify(oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return documentDomain.ErrIncorrectPassword
	}
	return d.passwords.Set(newPassword)
}

// HasAppPassword reports whether an app password is set.
func (d *documentUseCase) HasAppPassword(_ context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.passwords.Has()
}

// ClearAll deletes all local data, verifying password first when an app password is set.
func (d *documentUseCase) ClearAll(_ context.Context, password string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	has, err := d.passwords.Has()
	if err != nil {
		return err
	}
	if has {
		ok, err := d.passwords.Verify(password)
		if err != nil {
			return err
		}
		if !ok {
			return documentDomain.ErrIncorrectPassword
		}
	}

	return d.clear("password")
}

// ForceClear deletes all local data once the confirmation phrase matches.
func (d *documentUseCase) ForceClear(_ context.Context, confirmation string) error {
	if err := customValidation.WrapValidationError(
		customValidation.ConfirmationPhrase.Validate(confirmation),
	); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.clear("confirmation")
}

// GetClearOnExit returns the clear-on-exit setting.
func (d *documentUseCase) GetClearOnExit(_ context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	settings, err := d.settings.Load()
	if err != nil {
		return false, err
	}
	return settings.ClearOnExit, nil
}

// SetClearOnExit stores the clear-on-exit setting.
func (d *documentUseCase) SetClearOnExit(_ context.Context, enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	settings, err := d.settings.Load()
	if err != nil {
		return err
	}
	settings.ClearOnExit = enabled
	return d.settings.Save(settings)
}

// ClearOnExit deletes all local data if the clear-on-exit setting is on.
func (d *documentUseCase) ClearOnExit(_ context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	settings, err := d.settings.Load()
	if err != nil {
		return false, err
	}
	if !settings.ClearOnExit {
		return false, nil
	}
	if err := d.clear("exit"); err != nil {
		return false, err
	}
	return true, nil
}

// current returns the cached working document, loading or creating it on first use.
// The caller must hold mu.
func (d *documentUseCase) current(ctx context.Context) (*documentDomain.Document, error) {
	if d.doc != nil {
		return d.doc, nil
	}

	plaintext, found, err := d.documents.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		d.doc = documentDomain.NewDocument(d.now())
		return d.doc, nil
	}
	defer cryptoDomain.Zero(plaintext)

	var doc documentDomain.Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, fmt.Errorf("%w: stored document is not valid JSON: %v", cryptoDomain.ErrInvalidData, err)
	}
	doc.Normalize()
	d.doc = &doc
	return d.doc, nil
}

// persist seals doc to disk and caches it. The caller must hold mu.
func (d *documentUseCase) persist(ctx context.Context, doc *documentDomain.Document) error {
	doc.Normalize()
	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	defer cryptoDomain.Zero(plaintext)

	if err := d.documents.Save(ctx, plaintext); err != nil {
		return err
	}
	d.doc = doc
	return nil
}

// clear deletes the document, the password hash and the settings, then resets the working
// document. The caller must hold mu.
func (d *documentUseCase) clear(reason string) error {
	if err := d.documents.Delete(); err != nil {
		return err
	}
	if err := d.passwords.Delete(); err != nil {
		return err
	}
	if err := d.settings.Delete(); err != nil {
		return err
	}
	d.doc = documentDomain.NewDocument(d.now())

	d.logger.Info("all local data cleared", slog.String("reason", reason))
	return nil
}

func cloneDocument(doc *documentDomain.Document) (*documentDomain.Document, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	var out documentDomain.Document
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	out.Normalize()
	return &out, nil
}
