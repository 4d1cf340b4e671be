// Package session — поток событий смены состояния входа.
// Подписчики получают SignedIn/SignedOut/TokenRefreshed; медленный подписчик
// теряет события, но не блокирует публикацию.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind — вид события.
type Kind string

const (
	SignedIn       Kind = "signed_in"
	SignedOut      Kind = "signed_out"
	TokenRefreshed Kind = "token_refreshed"
)

// Event — смена состояния сессии пользователя.
type Event struct {
	Kind   Kind
	UserID uuid.UUID
	At     time.Time
}

const defaultBuffer = 64

// Broker раздаёт события всем подписчикам.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
}

// NewBroker создаёт брокер; buffer <= 0 — размер буфера подписчика по умолчанию.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Broker{subs: make(map[int]chan Event), buffer: buffer}
}

// Subscribe возвращает канал событий и функцию отписки.
// После отписки или Close канал закрывается.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Publish рассылает событие; возвращает число подписчиков, которым оно не
// поместилось в буфер.
func (b *Broker) Publish(e Event) (dropped int) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			dropped++
		}
	}

	return dropped
}

// Close закрывает все подписки; последующие Publish ничего не делают.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
