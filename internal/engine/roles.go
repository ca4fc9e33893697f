package engine

// Roles fixes the slot order for both rosters. Slot index i always holds the
// character fighting in Roles[i].
var Roles = []string{
	"Captain",
	"Vice",
	"Tank",
	"Healer",
	"Support1",
	"Support2",
}

// NumSlots is the roster size, one slot per role.
const NumSlots = 6
