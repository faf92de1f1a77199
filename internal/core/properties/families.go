package properties

const (
	ArmorStandFamily = "armor_stand"
	DisplayFamily    = "display"
)

// Property names shared with the client resource pack.
const (
	ArmorStandArms        = "geyser:arms"
	ArmorStandNoBasePlate = "geyser:no_bp"
	ArmorStandSmall       = "geyser:small"

	DisplayType  = "geyser:display_type"
	DisplayBlock = "geyser:block"
)

// Armor stand part prefixes; each part has _rx, _ry and _rz float slots.
var ArmorStandParts = []string{"he", "bo", "la", "ra", "ll", "rl"}

// Display transform slots in x, y, z order.
var (
	DisplayTranslation = [3]string{"geyser:t_x", "geyser:t_y", "geyser:t_z"}
	DisplayScale       = [3]string{"geyser:s_x", "geyser:s_y", "geyser:s_z"}
	DisplayRotation    = [3]string{"geyser:r_x", "geyser:r_y", "geyser:r_z"}
)

// DisplayTypes are the item display contexts in wire order.
var DisplayTypes = []string{
	"none",
	"thirdperson_lefthand",
	"thirdperson_righthand",
	"firstperson_lefthand",
	"firstperson_righthand",
	"head",
	"gui",
	"ground",
	"fixed",
}

// PartRotation returns the x, y, z slot names of an armor stand part.
func PartRotation(part string) [3]string {
	p := "geyser:" + part
	return [3]string{p + "_rx", p + "_ry", p + "_rz"}
}

// Builtin returns the built-in definitions of every family.
func Builtin() map[string][]Definition {
	armorStand := []Definition{
		Bool(ArmorStandArms),
		Bool(ArmorStandNoBasePlate),
		Bool(ArmorStandSmall),
	}
	for _, part := range ArmorStandParts {
		for _, name := range PartRotation(part) {
			armorStand = append(armorStand, Float(name))
		}
	}

	var display []Definition
	for _, group := range [][3]string{DisplayTranslation, DisplayScale, DisplayRotation} {
		for _, name := range group {
			display = append(display, Float(name))
		}
	}
	display = append(display,
		Enum(DisplayType, DisplayTypes...),
		Int(DisplayBlock),
	)

	return map[string][]Definition{
		ArmorStandFamily: armorStand,
		DisplayFamily:    display,
	}
}

// BuildRegistry registers the built-in families followed by extra definitions.
// Extras for a built-in family are appended after its built-in slots, so built-in
// indices never move.
func BuildRegistry(extra map[string][]Definition) (*Registry, error) {
	families := Builtin()
	for family, defs := range extra {
		families[family] = append(families[family], defs...)
	}

	schemas := make([]*Schema, 0, len(families))
	for family, defs := range families {
		s, err := Register(family, defs...)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return NewRegistry(schemas...)
}
