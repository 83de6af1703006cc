package ledger

import (
	"context"
	"fmt"
	"time"

	"zenledger/internal/classify"
	"zenledger/internal/core"
	applog "zenledger/internal/log"
)

// Service orchestrates the record/delete flows: classification with fallback,
// taxonomy normalization, persistence through the Store, and best-effort
// event publishing.
type Service struct {
	store      *Store
	classifier classify.Classifier
	events     EventPublisher
	logger     *applog.Logger
}

// NewService wires the store with a classifier. events may be nil when no
// bus is configured.
func NewService(store *Store, classifier classify.Classifier, events EventPublisher) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		events:     events,
		logger:     applog.Component(applog.ComponentLedger),
	}
}

// RecordRequest is the user-supplied part of a new transaction; category and
// type come from the classification gateway.
type RecordRequest struct {
	Description string
	Amount      core.Money
	Date        time.Time
}

// Record classifies the request and appends the resulting transaction.
//
// A classification failure degrades to the {General, expense} fallback and
// the record still completes. Context cancellation is different: if the
// caller abandoned the flow while the gateway call was in flight, the result
// is discarded and nothing is appended.
func (s *Service) Record(ctx context.Context, req RecordRequest) (core.Transaction, error) {
	result, err := s.classifier.Classify(ctx, req.Description, req.Amount)
	if cerr := ctx.Err(); cerr != nil {
		s.logger.InfoContext(ctx, "Record flow cancelled, discarding classification", "reason", cerr)
		return core.Transaction{}, cerr
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Classification failed, using fallback",
			applog.FieldError, err,
			applog.FieldDescription, req.Description)
		result = classify.Fallback()
	} else {
		result = classify.Normalize(result)
	}

	tx := core.Transaction{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    result.Category,
		Type:        result.Type,
	}
	stored, err := s.store.Add(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	s.publish(ctx, EventCreated, stored.ID)
	return stored, nil
}

// Remove deletes by id. Unknown ids are a no-op and publish nothing.
func (s *Service) Remove(ctx context.Context, id string) error {
	existed := s.store.Contains(id)
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}
	if existed {
		s.publish(ctx, EventDeleted, id)
	}
	return nil
}

// Transactions returns a snapshot of the full collection.
func (s *Service) Transactions() []core.Transaction {
	return s.store.Snapshot()
}

// YearSummary returns the 12 per-month aggregates for a year.
func (s *Service) YearSummary(year int) [12]core.MonthlyStats {
	return core.AggregateByMonth(s.store.Snapshot(), year)
}

// MonthView returns the drill-down for one month.
func (s *Service) MonthView(year int, month time.Month) core.MonthView {
	return core.BuildMonthView(s.store.Snapshot(), year, month)
}

func (s *Service) publish(ctx context.Context, action, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, action, id); err != nil {
		s.logger.WarnContext(ctx, "Failed publishing ledger event",
			applog.FieldAction, action,
			applog.FieldTransactionID, id,
			applog.FieldError, err)
	}
}
