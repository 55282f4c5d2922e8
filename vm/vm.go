// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/neilotoole/errgroup"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/emap"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/lockmap"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/tstate"
)

// Database is the committed state of the VM.
type Database interface {
	database.KeyValueReaderWriterDeleter
	database.Batcher
	io.Closer
}

// VM is an in-process ledger for counters. It verifies and executes
// transactions and commits each successful one to [Database] atomically.
type VM struct {
	config  config.Config
	genesis *genesis.Genesis
	rules   *genesis.Rules

	log       logging.Logger
	tracer    trace.Tracer
	metrics   *Metrics
	gatherers prometheus.Gatherers

	db        Database
	reader    *cachedReader
	locks     *lockmap.Lockmap
	bh        *storage.BalanceHandler
	processor *chain.Processor
	seen      *emap.EMap[*chain.Transaction]

	actionRegistry chain.ActionRegistry
	authRegistry   chain.AuthRegistry

	now    func() int64
	closed atomic.Bool
}

// Open creates the pebble database of the VM under [dataDir] and calls [New].
func Open(
	dataDir string,
	g *genesis.Genesis,
	cfg config.Config,
	log logging.Logger,
	options ...Option,
) (*VM, error) {
	db, registry, err := storage.New(cfg.StorageConfig, dataDir, "state")
	if err != nil {
		return nil, err
	}
	vm, err := New(db, g, cfg, log, append(options, WithGatherer(registry))...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return vm, nil
}

// New applies [g] to [db] if [db] is empty. [g.Rules] must be bound to
// the chain ID of the genesis bytes.
func New(
	db Database,
	g *genesis.Genesis,
	cfg config.Config,
	log logging.Logger,
	options ...Option,
) (*VM, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	tracer, err := trace.New(&cfg.TraceConfig)
	if err != nil {
		return nil, err
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}
	actionRegistry, err := actions.NewRegistry()
	if err != nil {
		return nil, err
	}
	authRegistry, err := auth.NewRegistry()
	if err != nil {
		return nil, err
	}

	vm := &VM{
		config:         cfg,
		genesis:        g,
		rules:          g.Rules,
		log:            log,
		tracer:         tracer,
		metrics:        metrics,
		gatherers:      prometheus.Gatherers{registry},
		db:             db,
		reader:         newCachedReader(db, cfg.CounterCacheTTL, cfg.CounterCacheCleanup),
		locks:          lockmap.New(cfg.StateLockMapSize),
		bh:             &storage.BalanceHandler{},
		seen:           emap.NewEMap[*chain.Transaction](),
		actionRegistry: actionRegistry,
		authRegistry:   authRegistry,
		now:            func() int64 { return time.Now().UnixMilli() },
	}
	for _, option := range options {
		option(vm)
	}
	vm.processor = chain.NewProcessor(vm.rules, vm.bh, tracer, log)

	if err := vm.initializeState(context.Background()); err != nil {
		return nil, err
	}
	vm.log.Info("initialized vm",
		zap.Stringer("version", consts.Version),
		zap.Stringer("chainID", vm.rules.GetChainID()),
		zap.Bool("enforceCounterOwnership", vm.rules.GetEnforceCounterOwnership()),
	)
	return vm, nil
}

func (vm *VM) initializeState(ctx context.Context) error {
	chainID := vm.rules.GetChainID()
	stored, ok, err := storage.GetGenesisChainID(vm.db)
	if err != nil {
		return err
	}
	if ok {
		if stored != chainID {
			return fmt.Errorf("%w: stored=%s genesis=%s", storage.ErrGenesisMismatch, stored, chainID)
		}
		return nil
	}

	mu := state.MutableStorage{}
	if err := vm.genesis.InitializeState(ctx, vm.tracer, mu, vm.bh); err != nil {
		return err
	}
	batch := vm.db.NewBatch()
	for k, v := range mu {
		if err := batch.Put([]byte(k), v); err != nil {
			return err
		}
	}
	if err := storage.SetGenesisChainID(batch, chainID); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.log.Info("applied genesis",
		zap.Int("allocations", len(vm.genesis.CustomAllocation)),
	)
	return nil
}

func (vm *VM) ChainID() ids.ID { return vm.rules.GetChainID() }

func (vm *VM) Rules() chain.Rules { return vm.rules }

func (vm *VM) ActionRegistry() chain.ActionRegistry { return vm.actionRegistry }

func (vm *VM) AuthRegistry() chain.AuthRegistry { return vm.authRegistry }

// Gatherer exposes the metrics of the VM and of the database it opened.
func (vm *VM) Gatherer() prometheus.Gatherer { return vm.gatherers }

// ParseTx decodes a signed transaction.
func (vm *VM) ParseTx(b []byte) (*chain.Transaction, error) {
	return chain.ParseTx(b, vm.actionRegistry, vm.authRegistry)
}

// Submit verifies and executes [tx]. The returned error is the reason the
// transaction failed, in which case nothing was committed.
func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	vm.metrics.txsSubmitted.Inc()
	if err := tx.Verify(ctx); err != nil {
		vm.recordFailure(tx, err)
		return nil, err
	}
	return vm.execute(ctx, tx)
}

// SubmitBatch verifies the signatures of every transaction concurrently and
// then executes them in order. Each transaction is atomic on its own; a
// failed one is reported in its [chain.Result] and does not stop the rest.
// If any signature is invalid nothing is executed.
func (vm *VM) SubmitBatch(ctx context.Context, txs []*chain.Transaction) ([]*chain.Result, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	if len(txs) == 0 {
		return nil, ErrNoTxs
	}
	ctx, span := vm.tracer.Start(ctx, "VM.SubmitBatch")
	defer span.End()

	vm.metrics.txsSubmitted.Add(float64(len(txs)))
	start := time.Now()
	if err := vm.verifyBatch(ctx, txs); err != nil {
		return nil, err
	}
	vm.metrics.verifySignatures.Observe(time.Since(start).Seconds())

	results := make([]*chain.Result, len(txs))
	for i, tx := range txs {
		result, err := vm.execute(ctx, tx)
		if err != nil {
			result = chain.NewFailedResult(tx.ID(), err)
		}
		results[i] = result
	}
	return results, nil
}

func (vm *VM) verifyBatch(ctx context.Context, txs []*chain.Transaction) error {
	cores := vm.config.AuthVerificationCores
	chunkSize := (len(txs) + cores - 1) / cores
	g, gctx := errgroup.WithContextN(ctx, cores, cores)
	for start := 0; start < len(txs); start += chunkSize {
		end := min(start+chunkSize, len(txs))
		chunk := txs[start:end]
		offset := start
		g.Go(func() error {
			return vm.verifyChunk(gctx, offset, chunk)
		})
	}
	return g.Wait()
}

func (vm *VM) verifyChunk(ctx context.Context, offset int, txs []*chain.Transaction) error {
	batch := ed25519.NewBatch(2 * len(txs))
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := tx.Digest()
		if err != nil {
			return err
		}
		if ba, ok := tx.Auth.(chain.BatchAuth); ok {
			ba.AddToBatch(batch, msg)
			continue
		}
		if err := tx.Auth.Verify(ctx, msg); err != nil {
			vm.recordFailure(tx, err)
			return fmt.Errorf("%w %d: %w", ErrTxIndex, offset+i, err)
		}
	}
	if batch.Verify() {
		return nil
	}
	// find the offender
	for i, tx := range txs {
		if err := tx.Verify(ctx); err != nil {
			vm.recordFailure(tx, err)
			return fmt.Errorf("%w %d: %w", ErrTxIndex, offset+i, err)
		}
	}
	return crypto.ErrInvalidSignature
}

func (vm *VM) execute(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	stateKeys, err := tx.StateKeys(vm.bh)
	if err != nil {
		vm.recordFailure(tx, err)
		return nil, err
	}
	release := vm.locks.LockKeys(stateKeys)
	defer release()

	now := vm.now()
	vm.seen.SetMin(now)
	if !vm.seen.Add(tx) {
		vm.recordFailure(tx, ErrDuplicateTx)
		return nil, ErrDuplicateTx
	}

	start := time.Now()
	ts := tstate.New(len(stateKeys))
	result, err := vm.processor.Execute(ctx, ts, vm.reader, tx, now)
	vm.metrics.execute.Observe(time.Since(start).Seconds())
	if err != nil {
		vm.seen.Remove(tx)
		vm.recordFailure(tx, err)
		return nil, err
	}

	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(ctx, vm.tracer, batch); err != nil {
		vm.seen.Remove(tx)
		return nil, err
	}
	if err := batch.Write(); err != nil {
		vm.seen.Remove(tx)
		return nil, err
	}
	vm.reader.update(stateKeys)

	vm.metrics.txsSucceeded.Inc()
	vm.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	for _, output := range result.Outputs {
		if init, ok := output.(*actions.InitializeResult); ok {
			vm.metrics.countersInitialized.Inc()
			vm.log.Debug("counter initialized",
				zap.Stringer("counter", init.Counter),
				zap.Stringer("owner", tx.Auth.Actor()),
				zap.Uint8("bump", init.Bump),
			)
		}
	}
	return result, nil
}

func (vm *VM) recordFailure(tx *chain.Transaction, err error) {
	reason := failureReason(err)
	vm.metrics.txsFailed.WithLabelValues(reason).Inc()
	vm.log.Debug("transaction rejected",
		zap.Stringer("txID", tx.ID()),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// GetCounter returns the committed counter at [addr].
func (vm *VM) GetCounter(ctx context.Context, addr codec.Address) (*storage.Counter, error) {
	if vm.closed.Load() {
		return nil, ErrClosed
	}
	key := string(storage.CounterKey(addr))
	vm.locks.RLock(key)
	defer vm.locks.RUnlock(key)

	return storage.GetCounter(ctx, vm.reader, addr)
}

// GetBalance returns the committed balance of [addr].
func (vm *VM) GetBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	if vm.closed.Load() {
		return 0, ErrClosed
	}
	key := string(storage.BalanceKey(addr))
	vm.locks.RLock(key)
	defer vm.locks.RUnlock(key)

	return vm.bh.GetBalance(ctx, addr, vm.reader)
}

func (vm *VM) Close() error {
	if !vm.closed.CompareAndSwap(false, true) {
		return nil
	}
	errs := []error{vm.tracer.Close(), vm.db.Close()}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	vm.log.Info("closed vm")
	return nil
}
