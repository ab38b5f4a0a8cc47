package texticles

import "math"

// Mode selects the pointer force field.
type Mode uint8

const (
	ModeNone     Mode = iota // no pointer interaction
	ModeRepel                // push away from the pointer
	ModeAttract              // pull toward the pointer
	ModeSwirl                // orbit around the pointer
	ModePulse                // oscillating repulsion that charges Energy
	ModeGravity              // distance-weighted pull that shrinks particles
	ModeNeural               // sine field perturbation with distance recolor
	ModeSymmetry             // pull toward the mirror image through the pointer
	ModeChaos                // position/time noise with recolor
	modeCount
)

var modeNames = [modeCount]string{
	"none", "repel", "attract", "swirl", "pulse",
	"gravity", "neural", "symmetry", "chaos",
}

// String returns the identifier ParseMode accepts.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return modeNames[ModeNone]
}

// ParseMode maps an identifier to a Mode. Unknown identifiers yield ModeNone
// and ok=false.
func ParseMode(s string) (m Mode, ok bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return ModeNone, false
}

// Modes returns every mode in cycling order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Interaction carries the pointer-relative quantities a Field needs.
type Interaction struct {
	// Force is 4·push·dt·strength.
	Force float64
	// Push is 1 − d/R.
	Push float64
	// Offset is particle position minus pointer position.
	Offset Vec2
	// Dist is |Offset|.
	Dist    float64
	Pointer Vec2
	// Millis is wall-clock time in milliseconds, shared by all particles.
	Millis float64
}

// unit returns Offset divided by a stabilized distance.
func (in Interaction) unit() Vec2 {
	return in.Offset.Scale(1 / (in.Dist + 0.01))
}

// Field is one pointer force-field algorithm.
type Field interface {
	Apply(p *Particle, in Interaction)
}

var fields = [modeCount]Field{
	ModeNone:     nil,
	ModeRepel:    repelField{},
	ModeAttract:  attractField{},
	ModeSwirl:    swirlField{},
	ModePulse:    pulseField{},
	ModeGravity:  gravityField{},
	ModeNeural:   neuralField{},
	ModeSymmetry: symmetryField{},
	ModeChaos:    chaosField{},
}

// Field returns the field for m, or nil for ModeNone and unknown modes.
func (m Mode) Field() Field {
	if m < modeCount {
		return fields[m]
	}
	return nil
}

// ApplyField applies mode's field to p for a pointer at pointer. Particles at
// or beyond InteractionRadius are left untouched. It reports whether the
// field acted.
func ApplyField(p *Particle, mode Mode, pointer Vec2, strength, dt, millis float64) bool {
	f := mode.Field()
	if f == nil {
		return false
	}
	off := p.Pos.Sub(pointer)
	d := off.Len()
	if d >= InteractionRadius {
		return false
	}
	push := 1 - d/InteractionRadius
	f.Apply(p, Interaction{
		Force:   4 * push * dt * strength,
		Push:    push,
		Offset:  off,
		Dist:    d,
		Pointer: pointer,
		Millis:  millis,
	})
	return true
}

type repelField struct{}

func (repelField) Apply(p *Particle, in Interaction) {
	p.Vel = p.Vel.Add(in.unit().Scale(in.Force))
}

type attractField struct{}

func (attractField) Apply(p *Particle, in Interaction) {
	p.Vel = p.Vel.Sub(in.unit().Scale(in.Force))
}

type swirlField struct{}

func (swirlField) Apply(p *Particle, in Interaction) {
	a := math.Atan2(in.Offset.Y, in.Offset.X) + math.Pi/2
	p.Vel.X += math.Cos(a) * in.Force * 0.7
	p.Vel.Y += math.Sin(a) * in.Force * 0.7
	p.Vel = p.Vel.Sub(in.Offset.Scale(0.0005 * in.Push))
}

type pulseField struct{}

func (pulseField) Apply(p *Particle, in Interaction) {
	wave := math.Sin(in.Millis*0.01)*0.5 + 0.5
	p.Vel = p.Vel.Add(in.unit().Scale(in.Force * (0.5 + wave)))
	p.Energy = math.Min(1, p.Energy+in.Push*0.1)
}

type gravityField struct{}

func (gravityField) Apply(p *Particle, in Interaction) {
	acc := in.Force * 2.5 / (in.Dist*0.1 + 0.1)
	p.Vel = p.Vel.Sub(in.unit().Scale(acc))
	p.Size = math.Max(0.5, p.BaseSize*(in.Dist/InteractionRadius))
}

type neuralField struct{}

func (neuralField) Apply(p *Particle, in Interaction) {
	phase := in.Dist*0.1 + in.Millis*0.002
	p.Vel.X += (math.Sin(phase) - 0.5) * in.Force * 0.5
	p.Vel.Y += (math.Cos(phase) - 0.5) * in.Force * 0.5
	p.Override = hsla(math.Mod(in.Dist*2, 360), 0.8, 0.6, 1)
	p.HasOverride = true
}

type symmetryField struct{}

func (symmetryField) Apply(p *Particle, in Interaction) {
	mirror := in.Pointer.Scale(2).Sub(p.Pos)
	if mirror.Sub(in.Pointer).Len() < InteractionRadius {
		p.Vel = p.Vel.Add(mirror.Sub(p.Pos).Scale(0.02 * in.Force))
	}
}

type chaosField struct{}

func (chaosField) Apply(p *Particle, in Interaction) {
	c1 := math.Sin(p.Pos.X*0.01 + in.Millis*0.001)
	c2 := math.Cos(p.Pos.Y*0.01 + in.Millis*0.001)
	c3 := math.Sin((p.Pos.X+p.Pos.Y)*0.005 + in.Millis*0.002)
	p.Vel.X += (c1-0.5)*in.Force*2 + math.Cos(c3*math.Pi*2)*in.Force
	p.Vel.Y += (c2-0.5)*in.Force*2 + math.Sin(c3*math.Pi*2)*in.Force
	p.Override = hsla(math.Mod(c1*60+c2*60+c3*60, 360), 0.8, 0.6, 1)
	p.HasOverride = true
}
