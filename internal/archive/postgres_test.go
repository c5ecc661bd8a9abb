package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemscout/msds-scout/internal/scout"
)

func testEntry() scout.ReportEntry {
	return scout.ReportEntry{
		CAS:      "106-38-7",
		Provider: "chem.example",
		Verified: true,
		Filepath: "data/verified/106-38-7_chem.example.pdf",
		URL:      "https://chem.example/msds.pdf",
	}
}

func TestSaveEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "report_entries")
	require.NoError(t, err)

	entry := testEntry()
	mock.ExpectExec("INSERT INTO report_entries").
		WithArgs(entry.CAS, entry.Name, entry.Provider, entry.Verified, entry.Filepath, entry.URL, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.SaveEntry(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEntryExecFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewPostgresWithPool(mock, "report_entries")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO report_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = store.SaveEntry(context.Background(), testEntry())
	assert.ErrorContains(t, err, "insert report entry")
}

func TestNewPostgresWithPoolValidation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	t.Run("nil pool rejected", func(t *testing.T) {
		_, err := NewPostgresWithPool(nil, "report_entries")
		assert.Error(t, err)
	})

	t.Run("invalid table name rejected", func(t *testing.T) {
		_, err := NewPostgresWithPool(mock, "report entries; drop table x")
		assert.Error(t, err)
	})

	t.Run("empty table gets default", func(t *testing.T) {
		store, err := NewPostgresWithPool(mock, "")
		require.NoError(t, err)
		assert.Equal(t, "report_entries", store.table)
	})
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), PostgresConfig{})
	assert.Error(t, err)
}

func TestNoOpSink(t *testing.T) {
	sink := NoOp{}
	assert.NoError(t, sink.SaveEntry(context.Background(), testEntry()))
	sink.Close()
}
