package semabook

// Mutex is a mutual exclusion lock built on a binary semaphore.
//
// Unlike sync.Mutex it has no owner: any goroutine may Unlock it.
// Unlocking an unlocked Mutex is a caller error and is not detected.
type Mutex struct {
	_   noCopy
	sem *Semaphore
}

// NewMutex creates an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{sem: NewBinarySemaphore(1)}
}

// Lock blocks until the mutex is free, then takes it.
func (m *Mutex) Lock() {
	m.sem.Acquire()
}

// TryLock takes the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	return m.sem.TryAcquire()
}

// Unlock frees the mutex.
func (m *Mutex) Unlock() {
	m.sem.Release(1)
}

// Guarded is a value that is only ever read or written while holding
// its Mutex.
//
// The value itself needs no atomics: the semaphore hand-off already
// orders every critical section after the previous one.
type Guarded[T any] struct {
	_  noCopy
	mu *Mutex
	v  T
}

// NewGuarded wraps v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{mu: NewMutex(), v: v}
}

// Do runs fn with exclusive access to the value.
// fn must not retain the pointer.
func (g *Guarded[T]) Do(fn func(v *T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.v)
}

// Load returns a copy of the value, taken under the lock.
func (g *Guarded[T]) Load() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v
}
