package entities

import (
	"testing"
	"time"

	"descarga_masiva/internal/domain/failures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySpec_RemoteQuery(t *testing.T) {
	q := QuerySpec{
		PeriodStart: time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC),
	}.WithDefaults()

	rq := q.RemoteQuery()
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rq.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), rq.End)
	assert.Equal(t, DownloadTypeReceived, rq.DownloadType)
	assert.Equal(t, RequestTypeMetadata, rq.RequestType)
	assert.Equal(t, DocumentTypeUndefined, rq.DocumentType)
	assert.Equal(t, DocumentStatusUndefined, rq.DocumentStatus)
}

func TestQuerySpec_Validate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		spec    QuerySpec
		wantErr bool
	}{
		{name: "valid", spec: QuerySpec{PeriodStart: day(1), PeriodEnd: day(2)}.WithDefaults()},
		{name: "same day", spec: QuerySpec{PeriodStart: day(5), PeriodEnd: day(5)}.WithDefaults()},
		{name: "missing end", spec: QuerySpec{PeriodStart: day(1)}.WithDefaults(), wantErr: true},
		{name: "end before start", spec: QuerySpec{PeriodStart: day(3), PeriodEnd: day(2)}.WithDefaults(), wantErr: true},
		{name: "bad document type", spec: QuerySpec{PeriodStart: day(1), PeriodEnd: day(2), DocumentType: "factura"}.WithDefaults(), wantErr: true},
		{name: "bad request type", spec: QuerySpec{PeriodStart: day(1), PeriodEnd: day(2), RequestType: "pdf"}.WithDefaults(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failures.Is(err, failures.KindValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseServiceKind(t *testing.T) {
	k, err := ParseServiceKind("Retenciones")
	require.NoError(t, err)
	assert.Equal(t, ServiceKindRetenciones, k)

	k, err = ParseServiceKind("")
	require.NoError(t, err)
	assert.Equal(t, ServiceKindCfdi, k)

	_, err = ParseServiceKind("nomina")
	assert.True(t, failures.Is(err, failures.KindValidation))
}
