package inventory

import "sync"

// partitionKey clave de serialización de una partición del ledger.
func partitionKey(productID, storeID string) string {
	return productID + "|" + storeID
}

// partitionLocks serializa la secuencia leer-validar-escribir por partición
// (producto, almacén) dentro del proceso. El bloqueo de fila en la BD cubre
// la concurrencia entre procesos; este mutex cubre la intra-proceso y permite
// probar la propiedad sin una BD real. Los mutex no se liberan: su número está
// acotado por las particiones vivas.
type partitionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPartitionLocks() *partitionLocks {
	return &partitionLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *partitionLocks) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// Lock bloquea la partición y devuelve la función de desbloqueo.
func (l *partitionLocks) Lock(key string) func() {
	m := l.get(key)
	m.Lock()
	return m.Unlock
}

// LockPair bloquea dos particiones en orden lexicográfico para evitar interbloqueos
// cuando un update mueve un movimiento de una partición a otra.
func (l *partitionLocks) LockPair(a, b string) func() {
	if a == b {
		return l.Lock(a)
	}
	if b < a {
		a, b = b, a
	}
	first := l.get(a)
	second := l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
