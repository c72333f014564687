package session

import (
	"math/rand"
	"sync"
	"time"
)

type trackedToken struct {
	token ReactionToken
	timer TimerHandle
}

// ReactionPool tracks ephemeral reaction tokens. Each spawn schedules
// exactly one removal after the ttl; a token is never evicted twice, and the
// number of pending timers never exceeds the number of tracked tokens.
type ReactionPool struct {
	sched    Scheduler
	clock    Clock
	ttl      time.Duration
	glyphs   []string
	rng      *rand.Rand
	onExpire func(ReactionToken)

	mu     sync.Mutex
	tokens map[string]*trackedToken
	order  []string
	done   bool
}

// NewReactionPool builds a pool spawning tokens with the given ttl. glyphs
// is the bank used when no glyph is supplied; onExpire may be nil.
func NewReactionPool(sched Scheduler, clock Clock, ttl time.Duration, glyphs []string, rng *rand.Rand, onExpire func(ReactionToken)) *ReactionPool {
	if ttl <= 0 {
		ttl = DefaultReactionTTL
	}

	return &ReactionPool{
		sched:    sched,
		clock:    clock,
		ttl:      ttl,
		glyphs:   glyphs,
		rng:      rng,
		onExpire: onExpire,
		tokens:   make(map[string]*trackedToken),
	}
}

// Spawn tracks a new token at the given position. An empty glyph picks one
// at random from the bank. After Teardown, Spawn is a no-op returning the
// zero token.
func (p *ReactionPool) Spawn(glyph string, pos Position) ReactionToken {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spawnLocked(glyph, pos)
}

// SpawnRandom tracks a new random-glyph token at a random position in the
// upper band of the surface.
func (p *ReactionPool) SpawnRandom() ReactionToken {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return ReactionToken{}
	}

	pos := Position{X: p.rng.Float64() * 100, Y: 30 + p.rng.Float64()*40}
	return p.spawnLocked("", pos)
}

func (p *ReactionPool) spawnLocked(glyph string, pos Position) ReactionToken {
	if p.done {
		return ReactionToken{}
	}
	if glyph == "" && len(p.glyphs) > 0 {
		glyph = p.glyphs[p.rng.Intn(len(p.glyphs))]
	}

	token := ReactionToken{
		ID:        newID(),
		Glyph:     glyph,
		Position:  pos,
		SpawnedAt: p.clock.Now().UnixMilli(),
		TTL:       p.ttl.Milliseconds(),
	}

	id := token.ID
	p.tokens[id] = &trackedToken{
		token: token,
		timer: p.sched.AfterFunc(p.ttl, func() { p.expire(id) }),
	}
	p.order = append(p.order, id)

	return token
}

func (p *ReactionPool) expire(id string) {
	p.mu.Lock()
	tracked, ok := p.tokens[id]
	if !ok {
		p.mu.Unlock()
		return
	}
	p.evictLocked(id)
	p.mu.Unlock()

	if p.onExpire != nil {
		p.onExpire(tracked.token)
	}
}

func (p *ReactionPool) evictLocked(id string) {
	delete(p.tokens, id)
	for i, tid := range p.order {
		if tid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Tokens returns the currently tracked tokens in spawn order.
func (p *ReactionPool) Tokens() []ReactionToken {
	p.mu.Lock()
	defer p.mu.Unlock()

	tokens := make([]ReactionToken, 0, len(p.order))
	for _, id := range p.order {
		tokens = append(tokens, p.tokens[id].token)
	}

	return tokens
}

// Size reports the number of currently tracked tokens.
func (p *ReactionPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tokens)
}

// Teardown cancels every pending expiry timer and clears the pool. Safe to
// call when some tokens already self-expired, and safe to call again.
func (p *ReactionPool) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true

	for id, tracked := range p.tokens {
		tracked.timer.Stop()
		delete(p.tokens, id)
	}
	p.order = nil
}
