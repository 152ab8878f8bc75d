package valueobjects

// Era classifies media by the collection that owns it. Media in the
// "present" collection is present-era; everything else is the past.
type Era string

const (
	EraPast    Era = "past"
	EraPresent Era = "present"
)

// EraForCollection derives the era from an owning collection name.
func EraForCollection(name string) Era {
	if name == string(EraPresent) {
		return EraPresent
	}
	return EraPast
}

// IsPresent reports whether the era is the present.
func (e Era) IsPresent() bool {
	return e == EraPresent
}

// String returns the string representation of the era
func (e Era) String() string {
	return string(e)
}
