// Package enrich produces cosmetic, presentation-only state for items:
// radar placement and simulated tracker status. Nothing here reads or
// writes persisted data, and nothing in the stores depends on it.
package enrich

import (
	"math/rand"
	"sync"

	"github.com/kasuganosora/memorybox/model"
)

// Blip positions an item on the radar in polar coordinates.
type Blip struct {
	ItemID   string `json:"id"`
	Name     string `json:"name"`
	Angle    int    `json:"angle"`    // degrees, 0-359
	Distance int    `json:"distance"` // percent of radius from center, 20-54
}

// RadarBlip derives a stable position from the first two characters of
// name. A missing character counts as 0.
func RadarBlip(it model.InventoryItem) Blip {
	var c0, c1 int
	runes := []rune(it.Name)
	if len(runes) > 0 {
		c0 = int(runes[0])
	}
	if len(runes) > 1 {
		c1 = int(runes[1])
	}
	return Blip{
		ItemID:   it.ID,
		Name:     it.Name,
		Angle:    (c0 * 17) % 360,
		Distance: 20 + (c1*13)%35,
	}
}

// Radar places every item.
func Radar(items []model.InventoryItem) []Blip {
	out := make([]Blip, len(items))
	for i, it := range items {
		out[i] = RadarBlip(it)
	}
	return out
}

// DeviceStatus is the simulated tracker state shown next to an item.
type DeviceStatus struct {
	ItemID     string `json:"id"`
	Connected  bool   `json:"connected"`
	Battery    int    `json:"battery"`    // percent, 0 when disconnected
	SignalBars int    `json:"signalBars"` // 0-3
}

// Simulator draws random battery and signal values. Safe for concurrent use.
type Simulator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulator uses rnd, or a time-seeded source when nil.
func NewSimulator(rnd *rand.Rand) *Simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Simulator{rnd: rnd}
}

// Status simulates the tracker at list position index. Every third entry
// shows as disconnected.
func (s *Simulator) Status(index int, it model.InventoryItem) DeviceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := DeviceStatus{
		ItemID:     it.ID,
		Connected:  index%3 != 2,
		SignalBars: s.rnd.Intn(4),
	}
	if st.Connected {
		st.Battery = 40 + s.rnd.Intn(60)
	}
	return st
}

// Devices simulates a status for each item in order.
func (s *Simulator) Devices(items []model.InventoryItem) []DeviceStatus {
	out := make([]DeviceStatus, len(items))
	for i, it := range items {
		out[i] = s.Status(i, it)
	}
	return out
}
