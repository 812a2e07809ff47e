package battle

// Element is a card affinity. Each element beats exactly one other.
type Element string

const (
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
	ElementFire  Element = "fire"
)

// AllElements contains all valid elements in cycle order
var AllElements = []Element{ElementFire, ElementEarth, ElementWater, ElementAir}

// beats maps an element to the one it is super-effective against.
var beats = map[Element]Element{
	ElementFire:  ElementEarth,
	ElementEarth: ElementWater,
	ElementWater: ElementAir,
	ElementAir:   ElementFire,
}

// IsValid checks if an element is one of the four known values
func (e Element) IsValid() bool {
	_, ok := beats[e]
	return ok
}

// Beats reports whether e has type advantage over other.
// Unknown elements never beat anything.
func (e Element) Beats(other Element) bool {
	target, ok := beats[e]
	return ok && target == other
}

func (e Element) String() string {
	return string(e)
}
