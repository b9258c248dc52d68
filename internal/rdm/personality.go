package rdm

// Personality is a single (footprint, label) pairing a responder may
// expose. Personalities are numbered 1-based on the wire; the slice index
// is always personality number minus one.
type Personality struct {
	Footprint   uint16
	Description string

	// Slots describes the DMX slot layout this personality occupies, for
	// PID_SLOT_INFO / PID_SLOT_DESCRIPTION / PID_DEFAULT_SLOT_VALUE. May be
	// nil for personalities that don't expose per-slot metadata.
	Slots []Slot
}

// SlotType distinguishes a primary DMX slot from a secondary (fine/extra)
// one, per ANSI E1.20 Table A-5.
type SlotType uint8

const (
	SlotTypePrimary   SlotType = 0x00
	SlotTypeSecondary SlotType = 0x01
)

// SlotCategory identifies what a slot controls (ANSI E1.20 Table A-6); only
// the categories this core's sample responders use are named.
type SlotCategory uint16

const (
	SlotCategoryIntensity SlotCategory = 0x0001
	SlotCategoryPan       SlotCategory = 0x0101
	SlotCategoryTilt      SlotCategory = 0x0102
)

// Slot is one entry in a personality's slot-data collection.
type Slot struct {
	Type         SlotType
	Category     SlotCategory
	DefaultValue uint8
	Description  string
}

// Personalities is an immutable, shared list of Personality values. It is
// initialized once at responder-construction time and never mutated;
// responders hold a non-owning reference to a package-level or
// configuration-derived slice.
type Personalities []Personality

// PersonalityManager tracks which Personality in an immutable Personalities
// list is currently active for one responder instance. The list itself is
// shared; only the active index is per-instance mutable state.
type PersonalityManager struct {
	list    Personalities
	current uint8 // 1-based; 0 means "no personalities configured"
}

// NewPersonalityManager builds a manager over list, defaulting to
// personality 1 if the list is non-empty.
func NewPersonalityManager(list Personalities) *PersonalityManager {
	pm := &PersonalityManager{list: list}
	if len(list) > 0 {
		pm.current = 1
	}
	return pm
}

// Count returns the number of personalities.
func (pm *PersonalityManager) Count() uint8 {
	return uint8(len(pm.list)) //nolint:gosec // bounded by configuration, not attacker input
}

// Current returns the 1-based active personality number.
func (pm *PersonalityManager) Current() uint8 {
	return pm.current
}

// Footprint returns the DMX footprint of the active personality, or 0 if
// none are configured.
func (pm *PersonalityManager) Footprint() uint16 {
	p, ok := pm.Get(pm.current)
	if !ok {
		return 0
	}
	return p.Footprint
}

// Slots returns the active personality's slot-data collection, or nil if
// none are configured.
func (pm *PersonalityManager) Slots() []Slot {
	p, ok := pm.Get(pm.current)
	if !ok {
		return nil
	}
	return p.Slots
}

// Get returns the personality numbered n (1-based), if it exists.
func (pm *PersonalityManager) Get(n uint8) (Personality, bool) {
	if n == 0 || int(n) > len(pm.list) {
		return Personality{}, false
	}
	return pm.list[n-1], true
}

// SetCurrent activates personality n (1-based). Returns false if n is out
// of range; the caller is responsible for the NACK.
func (pm *PersonalityManager) SetCurrent(n uint8) bool {
	if _, ok := pm.Get(n); !ok {
		return false
	}
	pm.current = n
	return true
}
