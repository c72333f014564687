package session

import (
	"math/rand"
	"time"
)

// StartSpeakerSim flips a pseudo-random speaker's talking flag on a fixed
// interval to emulate live voice activity. The speaker set is re-read on
// every tick; a tick with no speakers is skipped, not an error.
func StartSpeakerSim(sched Scheduler, interval time.Duration, rng *rand.Rand, speakers func() []string, toggle func(id string)) CancelFunc {
	t := startTicker(sched, interval, func() {
		ids := speakers()
		if len(ids) == 0 {
			return
		}
		toggle(ids[rng.Intn(len(ids))])
	})

	return t.Stop
}
