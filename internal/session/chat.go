package session

import (
	"math/rand"
	"time"
)

// StartChatSim synthesizes an inbound chat message on a fixed interval,
// attributed to a random eligible author with a random entry from the
// message bank. Runs only while chat is open; the caller starts it on
// chat-open and cancels it on chat-close. Re-opening must call this again
// for a fresh timer rather than resuming a cancelled one.
func StartChatSim(sched Scheduler, interval time.Duration, clock Clock, rng *rand.Rand, authors func() []string, bank []string, emit func(ChatMessage)) CancelFunc {
	t := startTicker(sched, interval, func() {
		ids := authors()
		if len(ids) == 0 || len(bank) == 0 {
			return
		}

		emit(ChatMessage{
			ID:         newID(),
			AuthorID:   ids[rng.Intn(len(ids))],
			Text:       bank[rng.Intn(len(bank))],
			Timestamp:  clock.Now().UnixMilli(),
			OriginSelf: false,
		})
	})

	return t.Stop
}
