package usecase

import (
	"context"
	"time"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
	"github.com/honeydid/honeydid/internal/metrics"
)

const metricsDomain = "document"

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)
	d.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Get records metrics for document retrieval.
func (d *documentUseCaseWithMetrics) Get(ctx context.Context) (*documentDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Get(ctx)
	d.record(ctx, "document_get", start, err)
	return doc, err
}

// Update records metrics for document updates.
func (d *documentUseCaseWithMetrics) Update(
	ctx context.Context,
	doc *documentDomain.Document,
) (*documentDomain.Document, error) {
	start := time.Now()
	out, err := d.next.Update(ctx, doc)
	d.record(ctx, "document_update", start, err)
	return out, err
}

// Replace records metrics for replacing the document with an import.
func (d *documentUseCaseWithMetrics) Replace(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	start := time.Now()
	out, err := d.next.Replace(ctx, imported)
	d.record(ctx, "document_replace", start, err)
	return out, err
}

// Merge records metrics for merging an import into the document.
func (d *documentUseCaseWithMetrics) Merge(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	start := time.Now()
	out, err := d.next.Merge(ctx, imported)
	d.record(ctx, "document_merge", start, err)
	return out, err
}

// ExportSingle records metrics for single-passphrase exports.
func (d *documentUseCaseWithMetrics) ExportSingle(
	ctx context.Context,
	opts exportDomain.SingleOptions,
) (*exportDomain.Artifact, error) {
	start := time.Now()
	artifact, err := d.next.ExportSingle(ctx, opts)
	d.record(ctx, "export_single", start, err)
	return artifact, err
}

// ExportDualKey records metrics for question-unlock exports.
func (d *documentUseCaseWithMetrics) ExportDualKey(
	ctx context.Context,
	opts exportDomain.DualKeyOptions,
) (*exportDomain.Artifact, error) {
	start := time.Now()
	artifact, err := d.next.ExportDualKey(ctx, opts)
	d.record(ctx, "export_dual_key", start, err)
	return artifact, err
}

// SaveExport records metrics for writing an export to disk.
func (d *documentUseCaseWithMetrics) SaveExport(
	ctx context.Context,
	artifact *exportDomain.Artifact,
	chooser exportDomain.DestinationChooser,
) (string, error) {
	start := time.Now()
	path, err := d.next.SaveExport(ctx, artifact, chooser)
	d.record(ctx, "export_save", start, err)
	return path, err
}

// Import records metrics for opening exported files.
func (d *documentUseCaseWithMetrics) Import(
	ctx context.Context,
	html string,
	creds exportDomain.Credentials,
) (*documentDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Import(ctx, html, creds)
	d.record(ctx, "import", start, err)
	return doc, err
}

// Inspect records metrics for inspecting exported files.
func (d *documentUseCaseWithMetrics) Inspect(ctx context.Context, html string) (*exportDomain.FileInfo, error) {
	start := time.Now()
	info, err := d.next.Inspect(ctx, html)
	d.record(ctx, "import_inspect", start, err)
	return info, err
}

// Print records metrics for printouts.
func (d *documentUseCaseWithMetrics) Print(ctx context.Context) ([]byte, error) {
	start := time.Now()
	out, err := d.next.Print(ctx)
	d.record(ctx, "print", start, err)
	return out, err
}

// RecoveryCard records metrics for recovery cards.
func (d *documentUseCaseWithMetrics) RecoveryCard(ctx context.Context, passphrase, fileName string) ([]byte, error) {
	start := time.Now()
	out, err := d.next.RecoveryCard(ctx, passphrase, fileName)
	d.record(ctx, "recovery_card", start, err)
	return out, err
}

// GeneratePassphrase records metrics for passphrase generation.
func (d *documentUseCaseWithMetrics) GeneratePassphrase(ctx context.Context) (string, error) {
	start := time.Now()
	passphrase, err := d.next.GeneratePassphrase(ctx)
	d.record(ctx, "passphrase_generate", start, err)
	return passphrase, err
}

// SetAppPassword records metrics for setting the app password.
func (d *documentUseCaseWithMetrics) SetAppPassword(ctx context.Context, password string) error {
	start := time.Now()
	err := d.next.SetAppPassword(ctx, password)
	d.record(ctx, "app_password_set", start, err)
	return err
}

// VerifyAppPassword records metrics for app password checks.
func (d *documentUseCaseWithMetrics) VerifyAppPassword(ctx context.Context, password string) (bool, error) {
	start := time.Now()
	ok, err := d.next.VerifyAppPassword(ctx, password)
	d.record(ctx, "app_password_verify", start, err)
	return ok, err
}

// ChangeAppPassword records metrics for app password changes.
func (d *documentUseCaseWithMetrics) ChangeAppPassword(ctx context.Context, oldPassword, newPassword string) error {
	start := time.Now()
	err := d.next.ChangeAppPassword(ctx, oldPassword, newPassword)
	d.record(ctx, "app_password_change", start, err)
	return err
}

// HasAppPassword records metrics for app password status checks.
func (d *documentUseCaseWithMetrics) HasAppPassword(ctx context.Context) (bool, error) {
	start := time.Now()
	ok, err := d.next.HasAppPassword(ctx)
	d.record(ctx, "app_password_status", start, err)
	return ok, err
}

// ClearAll records metrics for password-confirmed data clearing.
func (d *documentUseCaseWithMetrics) ClearAll(ctx context.Context, password string) error {
	start := time.Now()
	err := d.next.ClearAll(ctx, password)
	d.record(ctx, "clear_all", start, err)
	return err
}

// ForceClear records metrics for phrase-confirmed data clearing.
func (d *documentUseCaseWithMetrics) ForceClear(ctx context.Context, confirmation string) error {
	start := time.Now()
	err := d.next.ForceClear(ctx, confirmation)
	d.record(ctx, "force_clear", start, err)
	return err
}

// GetClearOnExit records metrics for reading the clear-on-exit setting.
func (d *documentUseCaseWithMetrics) GetClearOnExit(ctx context.Context) (bool, error) {
	start := time.Now()
	enabled, err := d.next.GetClearOnExit(ctx)
	d.record(ctx, "settings_get", start, err)
	return enabled, err
}

// SetClearOnExit records metrics for changing the clear-on-exit setting.
func (d *documentUseCaseWithMetrics) SetClearOnExit(ctx context.Context, enabled bool) error {
	start := time.Now()
	err := d.next.SetClearOnExit(ctx, enabled)
	d.record(ctx, "settings_set", start, err)
	return err
}

// ClearOnExit records metrics for the exit hook.
func (d *documentUseCaseWithMetrics) ClearOnExit(ctx context.Context) (bool, error) {
	start := time.Now()
	cleared, err := d.next.ClearOnExit(ctx)
	d.record(ctx, "clear_on_exit", start, err)
	return cleared, err
}
