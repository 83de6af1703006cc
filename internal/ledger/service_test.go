package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"zenledger/internal/classify"
	"zenledger/internal/core"
)

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string, core.Money) (classify.Result, error) {
	return classify.Result{}, errors.New("gateway down")
}

type fixedClassifier struct{ result classify.Result }

func (c fixedClassifier) Classify(context.Context, string, core.Money) (classify.Result, error) {
	return c.result, nil
}

// blockingClassifier waits for the context to be cancelled, like a stalled
// network call that only returns once the host gives up.
type blockingClassifier struct{}

func (blockingClassifier) Classify(ctx context.Context, _ string, _ core.Money) (classify.Result, error) {
	<-ctx.Done()
	return classify.Result{}, ctx.Err()
}

type recordingPublisher struct {
	actions []string
	ids     []string
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, action, id string) error {
	p.actions = append(p.actions, action)
	p.ids = append(p.ids, id)
	return nil
}

func newService(c classify.Classifier, p EventPublisher) (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	store := NewStore(context.Background(), repo)
	return NewService(store, c, p), repo
}

func req() RecordRequest {
	return RecordRequest{
		Description: "something",
		Amount:      core.Money{Cents: 1200},
		Date:        core.NewDate(2024, time.March, 10),
	}
}

func TestRecordFallsBackWhenClassifierFails(t *testing.T) {
	svc, _ := newService(failingClassifier{}, nil)

	tx, err := svc.Record(context.Background(), req())
	if err != nil {
		t.Fatalf("record must complete despite gateway failure: %v", err)
	}
	if tx.Category != core.CategoryGeneral || tx.Type != core.TypeExpense {
		t.Fatalf("expected fallback {General expense}, got {%s %s}", tx.Category, tx.Type)
	}
	if len(svc.Transactions()) != 1 {
		t.Fatalf("transaction not stored")
	}
}

func TestRecordCoercesUnknownCategory(t *testing.T) {
	svc, _ := newService(fixedClassifier{classify.Result{Category: "NotARealCategory", Type: core.TypeExpense}}, nil)

	tx, err := svc.Record(context.Background(), req())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.Category != core.CategoryGeneral {
		t.Fatalf("expected General, got %q", tx.Category)
	}
}

func TestRecordForcesSentinelCategories(t *testing.T) {
	svc, _ := newService(fixedClassifier{classify.Result{Category: "Shopping", Type: core.TypeIncome}}, nil)
	tx, err := svc.Record(context.Background(), req())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.Category != core.CategoryIncome {
		t.Fatalf("income must carry the Income sentinel, got %q", tx.Category)
	}
}

func TestRecordDiscardsOnCancelledContext(t *testing.T) {
	svc, repo := newService(blockingClassifier{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
		close(done)
	}()
	_, err := svc.Record(ctx, req())
	<-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(svc.Transactions()) != 0 {
		t.Fatalf("cancelled record must not append")
	}
	if repo.saves != 0 {
		t.Fatalf("cancelled record must not save")
	}
}

func TestRecordPublishesCreatedEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newService(fixedClassifier{classify.Result{Category: "Shopping", Type: core.TypeExpense}}, pub)

	tx, err := svc.Record(context.Background(), req())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(pub.actions) != 1 || pub.actions[0] != EventCreated || pub.ids[0] != tx.ID {
		t.Fatalf("unexpected events: %v %v", pub.actions, pub.ids)
	}
}

func TestRemovePublishesOnlyWhenPresent(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newService(fixedClassifier{classify.Result{Category: "Shopping", Type: core.TypeExpense}}, pub)
	tx, _ := svc.Record(context.Background(), req())

	if err := svc.Remove(context.Background(), "no-such-id"); err != nil {
		t.Fatalf("no-op remove errored: %v", err)
	}
	if err := svc.Remove(context.Background(), tx.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(pub.actions) != 2 || pub.actions[1] != EventDeleted {
		t.Fatalf("expected exactly one deleted event, got %v", pub.actions)
	}
}

func TestYearSummaryAndMonthView(t *testing.T) {
	svc, _ := newService(fixedClassifier{classify.Result{Category: "Shopping", Type: core.TypeExpense}}, nil)
	r := req()
	r.Date = core.NewDate(2024, time.March, 15)
	if _, err := svc.Record(context.Background(), r); err != nil {
		t.Fatalf("record: %v", err)
	}

	summary := svc.YearSummary(2024)
	if summary[2].Expense.Cents != 1200 {
		t.Fatalf("march expense = %d, want 1200", summary[2].Expense.Cents)
	}

	view := svc.MonthView(2024, time.March)
	if len(view.Transactions) != 1 || view.Expense.Cents != 1200 {
		t.Fatalf("unexpected month view: %+v", view)
	}
}
