package session_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/waveroom/waveroom-go/internal/session"
)

const speakerInterval = 4 * time.Second

func TestSpeakerSimTogglesARandomSpeakerEachTick(t *testing.T) {
	clk := newFakeClock()
	rng := rand.New(rand.NewSource(1))
	speakers := []string{"s1", "s2"}
	toggles := map[string]int{}

	cancel := session.StartSpeakerSim(clk, speakerInterval, rng,
		func() []string { return speakers },
		func(id string) { toggles[id]++ },
	)
	defer cancel()

	for i := 0; i < 1000; i++ {
		clk.Advance(speakerInterval)
	}

	total := toggles["s1"] + toggles["s2"]
	assert.Equal(t, 1000, total)
	assert.Positive(t, toggles["s1"], "selection should not be biased to one speaker")
	assert.Positive(t, toggles["s2"], "selection should not be biased to one speaker")
}

func TestSpeakerSimSkipsTicksWithNoSpeakers(t *testing.T) {
	clk := newFakeClock()
	rng := rand.New(rand.NewSource(1))
	var speakers []string
	toggled := 0

	cancel := session.StartSpeakerSim(clk, speakerInterval, rng,
		func() []string { return speakers },
		func(id string) { toggled++ },
	)
	defer cancel()

	clk.Advance(10 * speakerInterval)
	assert.Zero(t, toggled)

	// The set is re-read every tick, so ticks resume toggling as soon as
	// speakers appear.
	speakers = []string{"s1"}
	clk.Advance(speakerInterval)
	assert.Equal(t, 1, toggled)
}

func TestSpeakerSimCancelStopsFutureTicks(t *testing.T) {
	clk := newFakeClock()
	rng := rand.New(rand.NewSource(1))
	toggled := 0

	cancel := session.StartSpeakerSim(clk, speakerInterval, rng,
		func() []string { return []string{"s1"} },
		func(id string) { toggled++ },
	)

	clk.Advance(2 * speakerInterval)
	assert.Equal(t, 2, toggled)

	cancel()
	assert.Zero(t, clk.Pending())

	clk.Advance(10 * speakerInterval)
	assert.Equal(t, 2, toggled)
}

func TestSpeakerSimCancelIsIdempotent(t *testing.T) {
	clk := newFakeClock()
	rng := rand.New(rand.NewSource(1))

	cancel := session.StartSpeakerSim(clk, speakerInterval, rng,
		func() []string { return []string{"s1"} },
		func(id string) {},
	)

	cancel()
	cancel()
	cancel()

	assert.Zero(t, clk.Pending())
}

func TestSpeakerSimSurvivesAPanickingTick(t *testing.T) {
	clk := newFakeClock()
	rng := rand.New(rand.NewSource(1))
	toggled := 0

	cancel := session.StartSpeakerSim(clk, speakerInterval, rng,
		func() []string { return []string{"s1"} },
		func(id string) {
			toggled++
			if toggled == 1 {
				panic("bad tick")
			}
		},
	)
	defer cancel()

	clk.Advance(3 * speakerInterval)
	assert.Equal(t, 3, toggled)
}
