// Package usecase defines the interfaces and implementations for the working document use cases.
// The use case owns the single in-memory document, persists every mutation through the at-rest
// envelope and drives export, import, print and data clearing.
package usecase

import (
	"context"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
	"github.com/honeydid/honeydid/internal/storage"
)

// DocumentStore persists the sealed working document.
type DocumentStore interface {
	Save(ctx context.Context, plaintext []byte) error
	Load(ctx context.Context) (plaintext []byte, found bool, err error)
	Delete() error
}

// PasswordStore persists the app password hash.
type PasswordStore interface {
	Set(password string) error
	Verify(password string) (bool, error)
	Has() (bool, error)
	Delete() error
}

// SettingsStore persists application settings.
type SettingsStore interface {
	Load() (storage.Settings, error)
	Save(settings storage.Settings) error
	Delete() error
}

// Exporter seals documents into exported artifacts.
type Exporter interface {
	ExportSingle(
		ctx context.Context,
		doc *documentDomain.Document,
		opts exportDomain.SingleOptions,
	) (*exportDomain.Artifact, error)
	ExportDualKey(
		ctx context.Context,
		doc *documentDomain.Document,
		opts exportDomain.DualKeyOptions,
	) (*exportDomain.Artifact, error)
}

// Importer opens exported artifacts.
type Importer interface {
	Import(ctx context.Context, html string, creds exportDomain.Credentials) (*documentDomain.Document, error)
	Inspect(html string) (*exportDomain.FileInfo, error)
}

// Printer renders unencrypted printouts.
type Printer interface {
	Print(doc *documentDomain.Document) ([]byte, error)
	RecoveryCard(doc *documentDomain.Document, passphrase, fileName string) ([]byte, error)
}

// DocumentUseCase defines the business logic around the working document.
type DocumentUseCase interface {
	// Get returns a copy of the working document, loading it on first use. A fresh document is
	// created when nothing was ever saved.
	Get(ctx context.Context) (*documentDomain.Document, error)
	// Update replaces the working document with an edited version and persists it.
	Update(ctx context.Context, doc *documentDomain.Document) (*documentDomain.Document, error)
	// Replace makes an imported document the working document as is.
	Replace(ctx context.Context, imported *documentDomain.Document) (*documentDomain.Document, error)
	// Merge adds the entries of an imported document that the working document lacks.
	Merge(ctx context.Context, imported *documentDomain.Document) (*documentDomain.Document, error)

	ExportSingle(ctx context.Context, opts exportDomain.SingleOptions) (*exportDomain.Artifact, error)
	ExportDualKey(ctx context.Context, opts exportDomain.DualKeyOptions) (*exportDomain.Artifact, error)
	// SaveExport asks chooser for a destination and writes the artifact there.
	SaveExport(
		ctx context.Context,
		artifact *exportDomain.Artifact,
		chooser exportDomain.DestinationChooser,
	) (string, error)

	// Import opens an exported file without touching the working document.
	Import(ctx context.Context, html string, creds exportDomain.Credentials) (*documentDomain.Document, error)
	Inspect(ctx context.Context, html string) (*exportDomain.FileInfo, error)

	Print(ctx context.Context) ([]byte, error)
	RecoveryCard(ctx context.Context, passphrase, fileName string) ([]byte, error)
	GeneratePassphrase(ctx context.Context) (string, error)

	SetAppPassword(ctx context.Context, password string) error
	VerifyAppPassword(ctx context.Context, password string) (bool, error)
	ChangeAppPassword(ctx context.Context, oldPassword, newPassword string) error
	HasAppPassword(ctx context.Context) (bool, error)

	// ClearAll deletes all local data. The app password is required when one is set.
	ClearAll(ctx context.Context, password string) error
	// ForceClear deletes all local data after the confirmation phrase is typed.
	ForceClear(ctx context.Context, confirmation string) error
	GetClearOnExit(ctx context.Context) (bool, error)
	SetClearOnExit(ctx context.Context, enabled bool) error
	// ClearOnExit deletes all local data when the clear-on-exit setting is on and reports whether
	// it did.
	ClearOnExit(ctx context.Context) (bool, error)
}
