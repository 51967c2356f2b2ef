package kafka

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"max.ks1230/budget-tracker/internal/entity/budget"
)

// Events travel as google.protobuf.Struct so consumers need no generated code.

func encodeEvent(event budget.TransactionEvent) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"event_id":       event.ID,
		"kind":           string(event.Kind),
		"transaction_id": strconv.FormatInt(event.Transaction.ID, 10),
		"category_id":    strconv.FormatInt(event.Transaction.CategoryID, 10),
		"amount":         event.Transaction.Amount.String(),
		"date":           event.Transaction.Date.Format(budget.DateLayout),
		"notes":          event.Transaction.Notes,
		"occurred_at":    event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode event")
	}
	return proto.Marshal(payload)
}

func decodeEvent(raw []byte) (budget.TransactionEvent, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(raw, &payload); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event")
	}
	fields := payload.GetFields()
	str := func(key string) string {
		return fields[key].GetStringValue()
	}

	var (
		event budget.TransactionEvent
		err   error
	)
	event.ID = str("event_id")
	event.Kind = budget.EventKind(str("kind"))
	event.Transaction.Notes = str("notes")
	if event.Transaction.ID, err = strconv.ParseInt(str("transaction_id"), 10, 64); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event transaction_id")
	}
	if event.Transaction.CategoryID, err = strconv.ParseInt(str("category_id"), 10, 64); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event category_id")
	}
	if event.Transaction.Amount, err = decimal.NewFromString(str("amount")); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event amount")
	}
	if event.Transaction.Date, err = time.Parse(budget.DateLayout, str("date")); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event date")
	}
	if event.OccurredAt, err = time.Parse(time.RFC3339Nano, str("occurred_at")); err != nil {
		return budget.TransactionEvent{}, errors.Wrap(err, "decode event occurred_at")
	}
	return event, nil
}
