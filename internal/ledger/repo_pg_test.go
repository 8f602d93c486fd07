package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := Record{
		ProposalID: "prop-1",
		Proposal: Proposal{
			ID:              "prop-1",
			OldFragment:     "<p>old</p>",
			NewFragment:     "<p>new</p>",
			TargetElementID: "x",
		},
		Status:       StatusPending,
		DiffFragment: "<span>diff</span>",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO change_records").
		WithArgs(
			"doc-1",
			rec.ProposalID,
			rec.Proposal.OldFragment,
			rec.Proposal.NewFragment,
			sqlmock.AnyArg(), // target_element_id
			string(StatusPending),
			rec.DiffFragment,
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), "doc-1", rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusOnlyTouchesPendingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	resolvedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE change_records").
		WithArgs(string(StatusAccepted), resolvedAt, "doc-1", "prop-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "doc-1", "prop-1", StatusAccepted, resolvedAt); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	resolved := created.Add(time.Minute)

	rows := sqlmock.NewRows([]string{
		"proposal_id", "old_fragment", "new_fragment", "target_element_id",
		"status", "diff_fragment", "created_at", "resolved_at",
	}).
		AddRow("prop-1", "<p>a</p>", "<p>b</p>", nil, "pending", "diff-1", created, nil).
		AddRow("prop-2", "<p>c</p>", "<p>d</p>", "x", "accepted", "diff-2", created, resolved)

	mock.ExpectQuery("SELECT (.+) FROM change_records").
		WithArgs("doc-1").
		WillReturnRows(rows)

	records, err := repo.ListByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Status != StatusPending || records[0].ResolvedAt != nil {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Proposal.TargetElementID != "x" || records[1].Status != StatusAccepted {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if records[1].ResolvedAt == nil {
		t.Fatalf("expected resolved_at on second record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
