package entity

import (
	"github.com/Rakise/Geyser/internal/core/identifier"
	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
)

// Context carries what the entities of one session share.
type Context struct {
	Sink       packet.Sink
	IDs        *identifier.Allocator
	Properties *properties.Registry
	Items      metadata.ItemTranslator
	Log        log.Log
}

// WithDefaults fills unset collaborators. Runtime ids default to the process-wide
// allocator so that ids stay unique across sessions.
func (c *Context) WithDefaults() *Context {
	if c.Sink == nil {
		c.Sink = packet.Discard
	}
	if c.IDs == nil {
		c.IDs = identifier.Entities()
	}
	if c.Items == nil {
		c.Items = metadata.PassthroughTranslator{}
	}
	if c.Log == nil {
		c.Log = log.NewNop()
	}
	return c
}
