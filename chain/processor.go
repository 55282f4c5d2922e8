// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes transactions one at a time on a shared [tstate.TState].
// Each transaction is atomic: it is either fully committed to the
// [tstate.TState] or leaves it untouched.
type Processor struct {
	rules  Rules
	bh     BalanceHandler
	tracer trace.Tracer
	log    logging.Logger
}

func NewProcessor(r Rules, bh BalanceHandler, tracer trace.Tracer, log logging.Logger) *Processor {
	return &Processor{
		rules:  r,
		bh:     bh,
		tracer: tracer,
		log:    log,
	}
}

func (p *Processor) Rules() Rules { return p.rules }

// Execute runs [tx] against [ts], falling back to [im] for keys [ts] has not
// changed. The signatures of [tx] must already be verified.
func (p *Processor) Execute(
	ctx context.Context,
	ts *tstate.TState,
	im state.Immutable,
	tx *Transaction,
	timestamp int64,
) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute", oteltrace.WithAttributes(
		attribute.String("tx", tx.ID().String()),
		attribute.Int("actions", len(tx.Actions)),
	))
	defer span.End()

	stateKeys, err := tx.StateKeys(p.bh)
	if err != nil {
		return nil, err
	}
	storage, err := Prefetch(ctx, im, stateKeys)
	if err != nil {
		return nil, err
	}
	view := ts.NewView(stateKeys, storage)
	result, err := tx.Execute(ctx, p.rules, p.bh, view, timestamp)
	if err != nil {
		p.log.Debug("transaction failed",
			zap.Stringer("txID", tx.ID()),
			zap.Stringer("sponsor", tx.Sponsor()),
			zap.Error(err),
		)
		span.RecordError(err)
		return nil, err
	}
	view.Commit()
	return result, nil
}

// Prefetch reads the current value of every key in [stateKeys] that exists.
func Prefetch(ctx context.Context, im state.Immutable, stateKeys state.Keys) (map[string][]byte, error) {
	storage := make(map[string][]byte, len(stateKeys))
	for k := range stateKeys {
		v, err := im.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}
	return storage, nil
}
