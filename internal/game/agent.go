package game

import (
	"encoding/json"
	"fmt"
	"time"
)

type ThreatState int

const (
	Threatening ThreatState = iota
	Vulnerable
)

func (s ThreatState) String() string {
	switch s {
	case Threatening:
		return "threatening"
	case Vulnerable:
		return "vulnerable"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ThreatState as a string.
func (s ThreatState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type ContainmentState int

const (
	Caged ContainmentState = iota
	Releasing
	Released
	Returning
)

func (s ContainmentState) String() string {
	switch s {
	case Caged:
		return "caged"
	case Releasing:
		return "releasing"
	case Released:
		return "released"
	case Returning:
		return "returning"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes ContainmentState as a string.
func (s ContainmentState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Role identifies an agent and selects its RoleProfile.
type Role int

const (
	RoleRed Role = iota
	RolePink
	RoleCyan
	RoleOrange
)

// RoleProfile is the per-role behavior table entry.
type RoleProfile struct {
	Name      string
	VisualKey string
	// SpeedScale multiplies the base agent speed. Keep it integral so the
	// agent stays on the cell lattice.
	SpeedScale     int
	ReleaseDelay   time.Duration
	SlotOffset     int
	StartsReleased bool
}

var roleProfiles = map[Role]RoleProfile{
	RoleRed:    {Name: "red", VisualKey: "agent_red", SpeedScale: 1, StartsReleased: true},
	RolePink:   {Name: "pink", VisualKey: "agent_pink", SpeedScale: 1, ReleaseDelay: 2 * time.Second, SlotOffset: 0},
	RoleCyan:   {Name: "cyan", VisualKey: "agent_cyan", SpeedScale: 1, ReleaseDelay: 5 * time.Second, SlotOffset: -2},
	RoleOrange: {Name: "orange", VisualKey: "agent_orange", SpeedScale: 1, ReleaseDelay: 8 * time.Second, SlotOffset: 2},
}

// Roles returns every role in roster order.
func Roles() []Role {
	return []Role{RoleRed, RolePink, RoleCyan, RoleOrange}
}

// Profile returns the behavior table entry for r.
func (r Role) Profile() RoleProfile {
	p, ok := roleProfiles[r]
	if !ok {
		panic(fmt.Sprintf("game: no profile for role %d", int(r)))
	}
	return p
}

func (r Role) String() string {
	if p, ok := roleProfiles[r]; ok {
		return p.Name
	}
	return "unknown"
}

// MarshalText serializes Role by name. It also covers JSON and YAML.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a role name.
func (r *Role) UnmarshalText(text []byte) error {
	for _, role := range Roles() {
		if role.String() == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", string(text))
}

// Agent is a non-player pursuer.
type Agent struct {
	ID          string
	Role        Role
	Pos         Vec
	Dir         Direction
	Speed       float64
	Threat      ThreatState
	Containment ContainmentState
	Path        *Path

	// returnStride is how many path waypoints a Returning agent consumes per tick.
	returnStride int
	cageTimer    time.Duration
	releaseAfter time.Duration
}

func newAgent(role Role, den *Den, t Tuning) *Agent {
	profile := role.Profile()
	speed := t.AgentSpeed * float64(profile.SpeedScale)
	a := &Agent{
		ID:           profile.Name,
		Role:         role,
		Speed:        speed,
		Threat:       Threatening,
		Path:         NewPath(),
		returnStride: max(1, int(t.ReturnSpeed/speed)),
		releaseAfter: t.releaseDelay(role),
	}
	if profile.StartsReleased {
		a.Pos = den.Threshold
		a.Dir = DirLeft
		a.Containment = Released
	} else {
		a.Pos = den.Slot(profile.SlotOffset)
		a.Dir = DirUp
		a.Containment = Caged
	}
	return a
}

func (a *Agent) IsVulnerable() bool { return a.Threat == Vulnerable }
func (a *Agent) IsReturning() bool { return a.Containment == Returning }

// scare flips a Threatening agent to Vulnerable. Returning agents are immune.
func (a *Agent) scare() bool {
	if a.Containment == Returning || a.Threat != Threatening {
		return false
	}
	a.Threat = Vulnerable
	return true
}

// catch sends a Vulnerable agent home.
func (a *Agent) catch() {
	a.Containment = Returning
	a.Threat = Threatening
	a.Path.Clear()
}

func (a *Agent) cage(respawn time.Duration) {
	a.Containment = Caged
	a.Threat = Threatening
	a.Dir = DirUp
	a.Path.Clear()
	a.cageTimer = 0
	a.releaseAfter = respawn
}

func (a *Agent) moveTo(next Vec) {
	if d := directionBetween(a.Pos, next); d != DirNone {
		a.Dir = d
	}
	a.Pos = next
}
