package packet

// DataKey identifies an entity data field of the target protocol.
type DataKey uint16

const (
	DataName DataKey = iota + 1
	DataNametagAlwaysShow
	DataScale
	DataWidth
	DataHeight
)

func (k DataKey) String() string {
	switch k {
	case DataName:
		return "name"
	case DataNametagAlwaysShow:
		return "nametag_always_show"
	case DataScale:
		return "scale"
	case DataWidth:
		return "width"
	case DataHeight:
		return "height"
	default:
		return "unknown"
	}
}

// MarshalText lets Metadata keys render by name in JSON.
func (k DataKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Metadata is a set of entity data values keyed by field.
type Metadata map[DataKey]any

// Clone returns a shallow copy; nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Flag is a bit in the target protocol's entity flag set.
type Flag uint8

const (
	FlagOnFire Flag = iota
	FlagSneaking
	FlagSprinting
	FlagInvisible
	FlagCanShowName
	FlagAlwaysShowName
	FlagNoAI
)

// FlagSet is a bit set of Flag values.
type FlagSet uint64

func (s FlagSet) Has(f Flag) bool { return s&(1<<f) != 0 }

func (s FlagSet) With(f Flag, v bool) FlagSet {
	if v {
		return s | 1<<f
	}
	return s &^ (1 << f)
}

// ItemData is an item in target-protocol form. The zero value is air.
type ItemData struct {
	ID             int32 `json:"id"`
	Count          uint8 `json:"count"`
	Damage         int32 `json:"damage,omitempty"`
	BlockRuntimeID int32 `json:"block_runtime_id,omitempty"`
}

// Air is the empty item.
var Air = ItemData{}

func (i ItemData) IsAir() bool { return i == Air }
