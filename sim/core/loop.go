package core

import (
	"log"
	"time"
)

// GameLoop steps a Simulation at a fixed tick rate.
type GameLoop struct {
	sim      *Simulation
	tickRate int
	logEvery int
	maxTicks uint64
	ticks    uint64
	stopChan chan struct{}
	done     chan struct{}
}

// NewGameLoop creates a loop. A maxTicks of zero runs until Stop; a logEvery
// of zero disables the periodic summary.
func NewGameLoop(sim *Simulation, tickRate, logEvery int, maxTicks uint64) *GameLoop {
	return &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		logEvery: logEvery,
		maxTicks: maxTicks,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or maxTicks ticks have run.
func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			if g.tick() {
				log.Printf("Game loop finished after %d ticks", g.ticks)
				return
			}
		}
	}
}

// RunFast steps the simulation maxTicks times without waiting for the
// ticker.
func (g *GameLoop) RunFast() {
	defer close(g.done)
	for !g.tick() {
	}
}

// Stop ends Run and waits for it to return.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}

// Ticks returns how many ticks have run.
func (g *GameLoop) Ticks() uint64 { return g.ticks }

// tick steps once and reports whether the loop reached maxTicks.
func (g *GameLoop) tick() bool {
	g.sim.Step()
	g.ticks++

	if g.logEvery > 0 && g.ticks%uint64(g.logEvery) == 0 {
		log.Print(g.sim.Summary())
	}
	return g.maxTicks > 0 && g.ticks >= g.maxTicks
}
