package world

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tuannh982/vector-map/utils/collections"
	"github.com/tuannh982/vector-map/utils/math"
	"github.com/tuannh982/vector-map/utils/service"
	"github.com/tuannh982/vector-map/utils/timer"
	"github.com/tuannh982/vector-map/world/commons"
)

var ErrCommandBacklogFull = errors.New("command backlog full")

type CommandKind int

const (
	CommandSpawn CommandKind = iota
	CommandDespawn
)

type Command struct {
	Kind      CommandKind
	ID        commons.EntityID
	Transform commons.Transform
}

type Stats struct {
	Tick      uint64
	Entities  int
	Spawned   uint64
	Despawned uint64
	// Relocated counts entities moved to a new slot by a swap-delete.
	Relocated uint64
	Dropped   uint64
	Batches   int
	CenterX   float64
	CenterY   float64
}

type tickRequest struct {
	seq       uint64
	duration  time.Duration
	timeoutTs time.Time
}

func (r *tickRequest) Duration() time.Duration {
	return r.duration
}

func (r *tickRequest) SetTimeoutTs(t time.Time) {
	r.timeoutTs = t
}

func (r *tickRequest) TimeoutTs() time.Time {
	return r.timeoutTs
}

// World keeps its live entities densely packed in a VectorMap and advances
// them on every tick. The entity map is owned by the tick goroutine; other
// goroutines talk to the world through commands and read it through Stats.
// Tick may be called directly only while the world is not running.
type World struct {
	*service.SimpleService
	name     string
	cfg      *Config
	entities *collections.VectorMap[commons.EntityID, *commons.Transform]
	pending  collections.Queue[Command]
	timer    timer.Timer[*tickRequest]
	rng      *rand.Rand
	stats    Stats
	statsMu  sync.Mutex
	snapshot Stats
	loopDone chan struct{}
	// channels
	Commands chan Command
	// log
	log *log.Entry
}

func NewWorld(name string, cfg *Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		name:     name,
		cfg:      cfg,
		entities: collections.NewVectorMap[commons.EntityID, *commons.Transform](),
		pending:  collections.NewQueue[Command](),
		timer:    timer.NewTimer[*tickRequest](name + "-timer"),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		loopDone: make(chan struct{}),
		Commands: make(chan Command, 4096),
		log:      log.WithFields(log.Fields{"world": name}),
	}
	w.SimpleService = service.NewSimpleService(name, w)
	for i := 0; i < cfg.InitialEntities; i++ {
		if err := w.spawn(w.randomTransform()); err != nil {
			return nil, err
		}
	}
	w.publish()
	return w, nil
}

func (w *World) Name() string {
	return w.name
}

func (w *World) OnStart(ctx context.Context) error {
	if err := w.timer.Start(ctx); err != nil {
		return err
	}
	w.log.WithFields(log.Fields{
		"entities": w.entities.Size(),
		"interval": time.Duration(w.cfg.TickInterval),
	}).Info("world started")
	go w.loop(ctx)
	return nil
}

func (w *World) OnStop() {
	w.timer.Stop()
}

// Serve blocks until the world has stopped and its tick goroutine has exited.
func (w *World) Serve() {
	if w.Done() == nil {
		return
	}
	w.SimpleService.Serve()
	<-w.loopDone
}

func (w *World) loop(ctx context.Context) {
	defer close(w.loopDone)
	if !w.timer.Reset(w.nextTick()) {
		return
	}
	for {
		select {
		case cmd := <-w.Commands:
			w.pending.Push(cmd)
		case req := <-w.timer.C():
			w.log.WithField("seq", req.seq).Trace("tick timer fired")
			stats := w.Tick()
			if w.cfg.MaxTicks > 0 && stats.Tick >= w.cfg.MaxTicks {
				w.log.WithField("tick", stats.Tick).Info("tick limit reached")
				w.Stop()
				return
			}
			if !w.timer.Reset(w.nextTick()) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *World) nextTick() *tickRequest {
	return &tickRequest{
		seq:      w.stats.Tick + 1,
		duration: time.Duration(w.cfg.TickInterval),
	}
}

// Spawn queues a new entity and returns its ID.
func (w *World) Spawn(t commons.Transform) (commons.EntityID, error) {
	id := commons.NewEntityID()
	return id, w.submit(Command{Kind: CommandSpawn, ID: id, Transform: t})
}

func (w *World) Despawn(id commons.EntityID) error {
	return w.submit(Command{Kind: CommandDespawn, ID: id})
}

func (w *World) submit(cmd Command) error {
	select {
	case w.Commands <- cmd:
		return nil
	default:
		return ErrCommandBacklogFull
	}
}

// Tick applies queued commands, spawns and despawns entities at the
// configured rates and advances every transform.
func (w *World) Tick() Stats {
	w.drainCommands()
	w.pending.Drain(w.apply)

	room := w.cfg.MaxEntities - w.entities.Size()
	for n := math.Clamp(w.cfg.SpawnPerTick, 0, room); n > 0; n-- {
		if err := w.spawn(w.randomTransform()); err != nil {
			w.log.WithError(err).Warn("could not spawn entity")
			break
		}
	}
	for n := math.Clamp(w.cfg.DespawnPerTick, 0, w.entities.Size()); n > 0; n-- {
		victim := w.entities.Entries()[w.rng.Intn(w.entities.Size())]
		w.despawn(victim.Key)
	}

	dt := time.Duration(w.cfg.TickInterval).Seconds()
	for _, e := range w.entities.Entries() {
		e.Value.Step(dt, w.cfg.Bounds)
	}
	if w.entities.Some(func(_ int, e collections.Entry[commons.EntityID, *commons.Transform]) bool {
		return !e.Value.InBounds(w.cfg.Bounds)
	}) {
		w.log.Warn("entity escaped the world bounds")
	}

	w.stats.Tick++
	w.stats.Entities = w.entities.Size()
	w.stats.Batches = math.DivCeil(w.entities.Size(), w.cfg.BatchSize)
	w.stats.CenterX, w.stats.CenterY = w.center()
	w.publish()

	fields := log.Fields{
		"tick":     w.stats.Tick,
		"entities": w.stats.Entities,
		"batches":  w.stats.Batches,
	}
	if w.cfg.ReportEvery > 0 && w.stats.Tick%w.cfg.ReportEvery == 0 {
		fields["spawned"] = w.stats.Spawned
		fields["despawned"] = w.stats.Despawned
		fields["relocated"] = w.stats.Relocated
		w.log.WithFields(fields).Info("report")
	} else {
		w.log.WithFields(fields).Debug("tick")
	}
	return w.stats
}

func (w *World) drainCommands() {
	for {
		select {
		case cmd := <-w.Commands:
			w.pending.Push(cmd)
		default:
			return
		}
	}
}

func (w *World) apply(cmd Command) {
	switch cmd.Kind {
	case CommandSpawn:
		if w.entities.Size() >= w.cfg.MaxEntities {
			w.stats.Dropped++
			w.log.WithField("entity", cmd.ID.Short()).Warn("world is full, spawn dropped")
			return
		}
		t := cmd.Transform
		w.entities.Set(cmd.ID, &t)
		w.stats.Spawned++
	case CommandDespawn:
		if !w.despawn(cmd.ID) {
			w.log.WithField("entity", cmd.ID.Short()).Debug("despawn of unknown entity ignored")
		}
	default:
		w.log.WithField("kind", cmd.Kind).Error("unknown command")
	}
}

func (w *World) spawn(t commons.Transform) error {
	id, err := commons.NewEntityIDFromReader(w.rng)
	if err != nil {
		return err
	}
	w.entities.Set(id, &t)
	w.stats.Spawned++
	return nil
}

func (w *World) despawn(id commons.EntityID) bool {
	ok := w.entities.DeleteWithSwap(id, func(moved, removed collections.Entry[commons.EntityID, *commons.Transform]) {
		w.stats.Relocated++
		slot, _ := w.entities.Slot(moved.Key)
		w.log.WithFields(log.Fields{
			"moved":   moved.Key.Short(),
			"removed": removed.Key.Short(),
			"slot":    slot,
		}).Trace("entity relocated")
	})
	if ok {
		w.stats.Despawned++
	}
	return ok
}

func (w *World) randomTransform() commons.Transform {
	b, s := w.cfg.Bounds, w.cfg.MaxSpeed
	return commons.Transform{
		X:  (w.rng.Float64()*2 - 1) * b,
		Y:  (w.rng.Float64()*2 - 1) * b,
		VX: (w.rng.Float64()*2 - 1) * s,
		VY: (w.rng.Float64()*2 - 1) * s,
	}
}

func (w *World) center() (float64, float64) {
	n := w.entities.Size()
	if n == 0 {
		return 0, 0
	}
	sum := collections.Reduce(w.entities, func(acc [2]float64, _ int, e collections.Entry[commons.EntityID, *commons.Transform]) [2]float64 {
		return [2]float64{acc[0] + e.Value.X, acc[1] + e.Value.Y}
	}, [2]float64{})
	return sum[0] / float64(n), sum[1] / float64(n)
}

func (w *World) publish() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.snapshot = w.stats
}

// Stats returns the counters as of the last completed tick. Safe for
// concurrent use.
func (w *World) Stats() Stats {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return w.snapshot
}
