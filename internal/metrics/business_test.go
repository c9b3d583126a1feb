package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	apperrors "github.com/honeydid/honeydid/internal/errors"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("honeydid_test")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "honeydid_test")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("honeydid_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "honeydid_test")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "document", "export_single", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "document", "export_single", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "document", "export_single", "success")
		bm.RecordOperation(context.Background(), "document", "import", "success")
		bm.RecordOperation(context.Background(), "storage", "envelope_save", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("honeydid_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "honeydid_test")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "document", "export_single", 123*time.Millisecond, "success")
	})

	t.Run("Success_RecordFailedDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "document", "export_single", 456*time.Millisecond, "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "document", "export_single", 100*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "document", "import", 200*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "storage", "envelope_save", 300*time.Millisecond, "error")
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_RecordOperationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordOperation(context.Background(), "document", "export_single", "success")
		noOpMetrics.RecordOperation(context.Background(), "document", "import", "error")
	})

	t.Run("NoOp_RecordDurationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordDuration(
			context.Background(),
			"document",
			"export_single",
			100*time.Millisecond,
			"success",
		)
		noOpMetrics.RecordDuration(context.Background(), "document", "import", 200*time.Millisecond, "error")
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	// Record various operations
	ctx := context.Background()

	// Record operation counts
	bm.RecordOperation(ctx, "document", "export_single", "success")
	bm.RecordOperation(ctx, "document", "export_single", "success")
	bm.RecordOperation(ctx, "document", "export_single", "error")
	bm.RecordOperation(ctx, "document", "import", "success")
	bm.RecordOperation(ctx, "document", "print", "success")
	bm.RecordOperation(ctx, "storage", "envelope_save", "success")

	// Record operation durations
	bm.RecordDuration(ctx, "document", "export_single", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "document", "export_single", 60*time.Millisecond, "success")
	bm.RecordDuration(ctx, "document", "export_single", 100*time.Millisecond, "error")
	bm.RecordDuration(ctx, "document", "import", 10*time.Millisecond, "success")
	bm.RecordDuration(ctx, "document", "print", 20*time.Millisecond, "success")
	bm.RecordDuration(ctx, "storage", "envelope_save", 150*time.Millisecond, "success")

	// Metrics should be recorded without errors
	// Verify metrics in Prometheus registry
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	// Check operation counts
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="document".*operation="export_single".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="document".*operation="export_single".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="document".*operation="import".*status="success"`,
		`1`,
	)

	// Check durations (existence)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="document".*operation="export_single".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="document".*operation="export_single".*status="success"`,
		``,
	)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: StatusSuccess},
		{name: "unexpected", err: errors.New("disk full"), want: StatusError},
		{name: "wrong passphrase", err: fmt.Errorf("open: %w", cryptoDomain.ErrDecryptionFailed), want: StatusRejected},
		{name: "corrupted file", err: exportDomain.ErrMarkerNotFound, want: StatusRejected},
		{name: "invalid input", err: apperrors.Wrap(apperrors.ErrInvalidInput, "too short"), want: StatusRejected},
		{name: "wrong app password", err: apperrors.Wrap(apperrors.ErrUnauthorized, "nope"), want: StatusRejected},
		{name: "declined save", err: exportDomain.ErrExportCancelled, want: StatusCancelled},
		{name: "cancelled context", err: context.Canceled, want: StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestBusinessMetrics_DurationBuckets(t *testing.T) {
	provider, err := NewProvider("bucket_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "bucket_test")
	require.NoError(t, err)
	bm.RecordDuration(context.Background(), "document", "export_single", 700*time.Millisecond, StatusSuccess)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assertBizMetricLine(t, w.Body.String(), `bucket_test_operation_duration_seconds_bucket`, `le="0.5"`, `0`)
	assertBizMetricLine(t, w.Body.String(), `bucket_test_operation_duration_seconds_bucket`, `le="1"`, `1`)
}
