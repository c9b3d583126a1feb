// Package mocks provides mock implementations for testing the document use case consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// MockDocumentUseCase is a mock implementation of DocumentUseCase for testing.
type MockDocumentUseCase struct {
	mock.Mock
}

func (m *MockDocumentUseCase) Get(ctx context.Context) (*documentDomain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) Update(
	ctx context.Context,
	doc *documentDomain.Document,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) Replace(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, imported)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) Merge(
	ctx context.Context,
	imported *documentDomain.Document,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, imported)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) ExportSingle(
	ctx context.Context,
	opts exportDomain.SingleOptions,
) (*exportDomain.Artifact, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exportDomain.Artifact), args.Error(1)
}

func (m *MockDocumentUseCase) ExportDualKey(
	ctx context.Context,
	opts exportDomain.DualKeyOptions,
) (*exportDomain.Artifact, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exportDomain.Artifact), args.Error(1)
}

func (m *MockDocumentUseCase) SaveExport(
	ctx context.Context,
	artifact *exportDomain.Artifact,
	chooser exportDomain.DestinationChooser,
) (string, error) {
	args := m.Called(ctx, artifact, chooser)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentUseCase) Import(
	ctx context.Context,
	html string,
	creds exportDomain.Credentials,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, html, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

func (m *MockDocumentUseCase) Inspect(ctx context.Context, html string) (*exportDomain.FileInfo, error) {
	args := m.Called(ctx, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exportDomain.FileInfo), args.Error(1)
}

func (m *MockDocumentUseCase) Print(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentUseCase) RecoveryCard(ctx context.Context, passphrase, fileName string) ([]byte, error) {
	args := m.Called(ctx, passphrase, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentUseCase) GeneratePassphrase(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentUseCase) SetAppPassword(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

func (m *MockDocumentUseCase) VerifyAppPassword(ctx context.Context, password string) (bool, error) {
	args := m.Called(ctx, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentUseCase) ChangeAppPassword(ctx context.Context, oldPassword, newPassword string) error {
	args := m.Called(ctx, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockDocumentUseCase) HasAppPassword(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentUseCase) ClearAll(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

func (m *MockDocumentUseCase) ForceClear(ctx context.Context, confirmation string) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

func (m *MockDocumentUseCase) GetClearOnExit(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentUseCase) SetClearOnExit(ctx context.Context, enabled bool) error {
	args := m.Called(ctx, enabled)
	return args.Error(0)
}

func (m *MockDocumentUseCase) ClearOnExit(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
