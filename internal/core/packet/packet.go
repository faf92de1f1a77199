package packet

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Rakise/Geyser/internal/core/properties"
)

// Packet is a fully built outbound target-protocol packet.
type Packet interface {
	Name() string
}

// Container ids used by equipment packets.
const (
	ContainerInventory uint8 = 0
	ContainerOffhand   uint8 = 119
)

type AddEntity struct {
	RuntimeID       int64                      `json:"runtime_id"`
	UUID            uuid.UUID                  `json:"uuid"`
	Identifier      string                     `json:"identifier"`
	Position        mgl32.Vec3                 `json:"position"`
	Rotation        mgl32.Vec3                 `json:"rotation"`
	Metadata        Metadata                   `json:"metadata,omitempty"`
	Flags           FlagSet                    `json:"flags"`
	IntProperties   []properties.IntProperty   `json:"int_properties,omitempty"`
	FloatProperties []properties.FloatProperty `json:"float_properties,omitempty"`
}

type RemoveEntity struct {
	RuntimeID int64 `json:"runtime_id"`
}

type MoveEntityAbsolute struct {
	RuntimeID  int64      `json:"runtime_id"`
	Position   mgl32.Vec3 `json:"position"`
	Rotation   mgl32.Vec3 `json:"rotation"`
	OnGround   bool       `json:"on_ground"`
	Teleported bool       `json:"teleported"`
}

// SetEntityData carries changed entity data, the flag set when it changed, and
// custom property writes.
type SetEntityData struct {
	RuntimeID       int64                      `json:"runtime_id"`
	Metadata        Metadata                   `json:"metadata,omitempty"`
	Flags           *FlagSet                   `json:"flags,omitempty"`
	IntProperties   []properties.IntProperty   `json:"int_properties,omitempty"`
	FloatProperties []properties.FloatProperty `json:"float_properties,omitempty"`
}

type MobEquipment struct {
	RuntimeID     int64    `json:"runtime_id"`
	Item          ItemData `json:"item"`
	HotbarSlot    int8     `json:"hotbar_slot"`
	InventorySlot uint8    `json:"inventory_slot"`
	ContainerID   uint8    `json:"container_id"`
}

type MobArmorEquipment struct {
	RuntimeID  int64    `json:"runtime_id"`
	Helmet     ItemData `json:"helmet"`
	Chestplate ItemData `json:"chestplate"`
	Leggings   ItemData `json:"leggings"`
	Boots      ItemData `json:"boots"`
}

func (*AddEntity) Name() string          { return "add_entity" }
func (*RemoveEntity) Name() string       { return "remove_entity" }
func (*MoveEntityAbsolute) Name() string { return "move_entity_absolute" }
func (*SetEntityData) Name() string      { return "set_entity_data" }
func (*MobEquipment) Name() string       { return "mob_equipment" }
func (*MobArmorEquipment) Name() string  { return "mob_armor_equipment" }
