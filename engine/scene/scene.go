package scene

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
)

// Scene manages a collection of rigs and ticks them once per frame.
// Rigs own independent skeletons, so their updates run in parallel on a worker pool.
// Scenes can be hot-swapped via the Active flag; an inactive scene does not animate.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently animating.
	Active() bool

	// SetActive sets whether this scene is animating.
	SetActive(active bool)

	// Add registers a rig and returns its ID. Adding a rig that is already registered
	// returns its existing ID, so a rig is never ticked twice in one frame.
	//
	// Parameters:
	//   - r: the rig to add
	//
	// Returns:
	//   - uint64: the rig ID (never 0)
	Add(r *rig.Rig) uint64

	// Remove unregisters a rig.
	//
	// Parameters:
	//   - id: the rig ID
	//
	// Returns:
	//   - bool: false if no rig has this ID
	Remove(id uint64) bool

	// Rig returns the rig registered under id, or nil.
	//
	// Parameters:
	//   - id: the rig ID
	//
	// Returns:
	//   - *rig.Rig: the rig or nil
	Rig(id uint64) *rig.Rig

	// IDs returns every registered rig ID in ascending order.
	IDs() []uint64

	// Count returns the number of registered rigs.
	Count() int

	// Update advances every playing rig by deltaTime in parallel and waits for all of them.
	// When a profiler is attached it is ticked once after the frame.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - int: the number of rigs that were animated
	Update(deltaTime float32) int
}

type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	registry map[uint64]*rig.Rig
	ids      map[*rig.Rig]uint64
	nextID   uint64

	profiler *profiler.Profiler

	// Pre-allocated slice reused each frame to avoid per-frame allocations.
	framePool []*rig.Rig

	// updatePool manages a bounded set of reusable goroutines for rig updates.
	// Workers persist across frames, avoiding per-frame goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new active Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:          name,
		active:        true,
		registry:      make(map[uint64]*rig.Rig),
		ids:           make(map[*rig.Rig]uint64),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithWorkers can override the default.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Add(r *rig.Rig) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(r)
}

func (s *scene) addLocked(r *rig.Rig) uint64 {
	if id, ok := s.ids[r]; ok {
		return id
	}
	id := s.nextID
	s.nextID++
	s.registry[id] = r
	s.ids[r] = id
	return id
}

func (s *scene) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.registry[id]
	if !ok {
		return false
	}
	delete(s.registry, id)
	delete(s.ids, r)
	return true
}

func (s *scene) Rig(id uint64) *rig.Rig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) IDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint64, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Update(deltaTime float32) int {
	// Exclusive for the whole frame: Add and Remove wait until every rig is done.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0
	}

	start := time.Now()
	frame := s.framePool[:0]
	for _, r := range s.registry {
		if r.Controller().IsPlaying() {
			frame = append(frame, r)
		}
	}

	// A WaitGroup provides per-frame barrier sync since pool.Wait() blocks until
	// workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for i, r := range frame {
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				r.Update(deltaTime)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Drop references so removed rigs can be collected.
	clear(frame)
	s.framePool = frame[:0]

	if s.profiler != nil {
		s.profiler.Tick(len(frame), time.Since(start))
	}
	return len(frame)
}
