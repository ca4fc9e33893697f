package catalog

// Default returns the built-in roster used when no catalog file is
// configured. Powers are hand-tuned so no character dominates every role.
func Default() []Character {
	return []Character{
		{Name: "Asuka", Roles: map[string]int{"Captain": 92, "Vice": 84, "Tank": 55, "Healer": 40, "Support1": 61, "Support2": 58}},
		{Name: "Brom", Roles: map[string]int{"Captain": 70, "Vice": 66, "Tank": 95, "Healer": 35, "Support1": 52, "Support2": 50}},
		{Name: "Ceres", Roles: map[string]int{"Captain": 58, "Vice": 62, "Tank": 44, "Healer": 93, "Support1": 71, "Support2": 69}},
		{Name: "Dorn", Roles: map[string]int{"Captain": 77, "Vice": 80, "Tank": 83, "Healer": 42, "Support1": 57, "Support2": 55}},
		{Name: "Elise", Roles: map[string]int{"Captain": 85, "Vice": 88, "Tank": 49, "Healer": 63, "Support1": 74, "Support2": 72}},
		{Name: "Fenn", Roles: map[string]int{"Captain": 60, "Vice": 64, "Tank": 68, "Healer": 58, "Support1": 89, "Support2": 86}},
		{Name: "Grit", Roles: map[string]int{"Captain": 66, "Vice": 59, "Tank": 90, "Healer": 38, "Support1": 55, "Support2": 60}},
		{Name: "Hale", Roles: map[string]int{"Captain": 81, "Vice": 76, "Tank": 62, "Healer": 70, "Support1": 65, "Support2": 67}},
		{Name: "Iris", Roles: map[string]int{"Captain": 73, "Vice": 78, "Tank": 41, "Healer": 88, "Support1": 80, "Support2": 77}},
		{Name: "Joro", Roles: map[string]int{"Captain": 55, "Vice": 57, "Tank": 74, "Healer": 51, "Support1": 83, "Support2": 91}},
		{Name: "Kael", Roles: map[string]int{"Captain": 94, "Vice": 87, "Tank": 66, "Healer": 45, "Support1": 60, "Support2": 62}},
		{Name: "Lumen", Roles: map[string]int{"Captain": 63, "Vice": 69, "Tank": 53, "Healer": 96, "Support1": 75, "Support2": 73}},
		{Name: "Mira", Roles: map[string]int{"Captain": 79, "Vice": 82, "Tank": 58, "Healer": 67, "Support1": 87, "Support2": 84}},
		{Name: "Nox", Roles: map[string]int{"Captain": 88, "Vice": 74, "Tank": 79, "Healer": 33, "Support1": 58, "Support2": 56}},
		{Name: "Opal", Roles: map[string]int{"Captain": 61, "Vice": 65, "Tank": 47, "Healer": 85, "Support1": 78, "Support2": 81}},
		{Name: "Piotr", Roles: map[string]int{"Captain": 72, "Vice": 71, "Tank": 86, "Healer": 48, "Support1": 63, "Support2": 59}},
	}
}
