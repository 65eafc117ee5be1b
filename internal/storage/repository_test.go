package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

var columns = []string{"id", "trade_date", "asset", "side", "amount", "profit", "status"}

func newMockRepo(t *testing.T) (*operationsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &operationsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestListOperations_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), day1, "USDT", "COMPRA", "100.00", "10.50", "COMPLETADA").
		AddRow(int64(2), day1, "USDT", "venta", "40", "-3", nil).
		AddRow(int64(3), day2, "BTC", "SELL", "0.01", "5", "PENDIENTE")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, trade_date, asset, side, amount, profit, status")).
		WillReturnRows(rows)

	out, err := repo.ListOperations(context.Background())
	if err != nil {
		t.Fatalf("ListOperations: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].Date != "2024-01-01" || out[0].Side != models.SideBuy || out[0].Profit.String() != "10.5" || out[0].Status != "COMPLETADA" {
		t.Fatalf("unexpected first record: %+v", out[0])
	}
	if out[1].Side != models.SideSell || out[1].Status != "" {
		t.Fatalf("unexpected second record: %+v", out[1])
	}
	if out[2].Date != "2024-01-02" || out[2].Asset != "BTC" || out[2].Amount.String() != "0.01" {
		t.Fatalf("unexpected third record: %+v", out[2])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListOperations_Empty(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT .* FROM p2p_operations").WillReturnRows(sqlmock.NewRows(columns))

	out, err := repo.ListOperations(context.Background())
	if err != nil || out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got out=%v err=%v", out, err)
	}
}

func TestListOperations_Errors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .* FROM p2p_operations").WillReturnError(dummyErr{})
			},
		},
		{
			name: "scan error",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).AddRow("x", "not-a-time", "USDT", "BUY", "1", "1", nil)
				mock.ExpectQuery("SELECT .* FROM p2p_operations").WillReturnRows(rows)
			},
		},
		{
			name: "row iteration error",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(int64(1), time.Now(), "USDT", "BUY", "1", "1", nil).
					RowError(0, dummyErr{})
				mock.ExpectQuery("SELECT .* FROM p2p_operations").WillReturnRows(rows)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)
			if _, err := repo.ListOperations(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPing_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectPing()
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	mock.ExpectPing().WillReturnError(dummyErr{})
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestNewOperationsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewOperationsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}
