package portal

// Status is the outcome of a shot
type Status uint8

const (
	StatusPlaced Status = iota
	// StatusDisabled: portals are turned off for the current level
	StatusDisabled
	StatusNoPair
	StatusInvalidSlot
	// StatusNoHit: nothing within the remaining distance
	StatusNoHit
	// StatusUnknownPortal: the shot hit a portal surface this pair does not own
	StatusUnknownPortal
	StatusPartnerUnplaced
	StatusMaxHopsExceeded
)

var statusNames = [...]string{
	StatusPlaced:          "placed",
	StatusDisabled:        "disabled",
	StatusNoPair:          "no pair",
	StatusInvalidSlot:     "invalid slot",
	StatusNoHit:           "no hit",
	StatusUnknownPortal:   "unknown portal",
	StatusPartnerUnplaced: "partner unplaced",
	StatusMaxHopsExceeded: "max hops exceeded",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}
