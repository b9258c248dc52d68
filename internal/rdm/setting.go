package rdm

// Setting is a single entry in a generic E1.37-1-style setting collection:
// either a bare description (e.g. a curve) or a (frequency, description)
// pair (e.g. a modulation frequency).
type Setting struct {
	Frequency   uint32
	Description string
}

// SettingManager tracks the active index into an immutable Setting list.
// MinIndex parameterizes whether index 0 is a valid selection: most
// collections have MinIndex 1, a few (notably curve and modulation
// frequency selections that include an "off"/"default" entry) have 0.
type SettingManager struct {
	list    []Setting
	current uint8
	MinIndex uint8
}

// NewSettingManager builds a manager over list with the given minimum valid
// index, defaulting current to minIndex.
func NewSettingManager(list []Setting, minIndex uint8) *SettingManager {
	return &SettingManager{list: list, current: minIndex, MinIndex: minIndex}
}

// Count returns the number of settings.
func (sm *SettingManager) Count() uint8 {
	return uint8(len(sm.list)) //nolint:gosec // bounded by configuration, not attacker input
}

// Current returns the active setting index.
func (sm *SettingManager) Current() uint8 {
	return sm.current
}

// Get returns the setting at index n, if in range [MinIndex, Count()+MinIndex-1]
// adjusted so that index 1 (or 0) maps to list[0].
func (sm *SettingManager) Get(n uint8) (Setting, bool) {
	idx := int(n) - int(sm.MinIndex)
	if idx < 0 || idx >= len(sm.list) {
		return Setting{}, false
	}
	return sm.list[idx], true
}

// InRange reports whether n is a selectable index without fetching the
// underlying Setting — used by SET handlers whose only job is validating
// and storing the index (e.g. CURVE, MODULATION_FREQUENCY).
func (sm *SettingManager) InRange(n uint8) bool {
	_, ok := sm.Get(n)
	return ok
}

// SetCurrent activates index n. Returns false if n is out of range.
func (sm *SettingManager) SetCurrent(n uint8) bool {
	if !sm.InRange(n) {
		return false
	}
	sm.current = n
	return true
}
