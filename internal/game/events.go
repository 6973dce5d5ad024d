package game

// SoundEvent is a sound the presentation layer should play.
type SoundEvent int

const (
	SoundBombLaid SoundEvent = iota
	SoundExplosion
	SoundKick
	SoundDeath
	SoundItem
	SoundTeleport
	SoundTrampoline
	SoundDisease
	SoundBox
	SoundThrow
	SoundGo
	SoundEarthquake
	SoundWin
)

// AnimationKind selects a one-shot animation.
type AnimationKind int

const (
	AnimationExplosion AnimationKind = iota
	AnimationDeath
	AnimationTeleport
	AnimationEarthquake
)

// AnimationEvent asks the presentation layer to play an animation at a
// map coordinate.
type AnimationEvent struct {
	Kind     AnimationKind `json:"kind"`
	Position Vec           `json:"position"`
}

// TakeSoundEvents returns and clears the queued sound events.
func (m *Map) TakeSoundEvents() []SoundEvent {
	out := m.sounds
	m.sounds = nil
	return out
}

// TakeAnimationEvents returns and clears the queued animation events.
func (m *Map) TakeAnimationEvents() []AnimationEvent {
	out := m.animations
	m.animations = nil
	return out
}

func (m *Map) playSound(s SoundEvent) {
	m.sounds = append(m.sounds, s)
}

func (m *Map) animate(kind AnimationKind, at Vec) {
	m.animations = append(m.animations, AnimationEvent{Kind: kind, Position: at})
}
