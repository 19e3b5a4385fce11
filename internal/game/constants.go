package game

import "time"

// Board geometry (world units)
const (
	CellSize    = 32.0
	BoardOffset = 16.0
)

// Movement (world units per tick)
const (
	PlayerSpeed = 4.0
	AgentSpeed  = 2.0
	ReturnSpeed = 16.0 // returning agents consume ReturnSpeed/AgentSpeed waypoints per tick
)

// PlayerStartDirection is the facing the player spawns with.
const PlayerStartDirection = DirRight

// Agent timers
const (
	ScareDuration = 8 * time.Second
	RespawnDelay  = 3 * time.Second
)

// Tick timing
const (
	TickRate     = 60 // ticks per second, one per rendered frame
	TickInterval = time.Second / TickRate
)
