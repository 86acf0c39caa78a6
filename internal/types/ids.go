package types

// ID type aliases give each integer key a domain meaning.
// They are distinct types so a LaneID cannot be passed where a TicketID is expected.

// SubAccountID identifies a tenant-scoped workspace
type SubAccountID int

// PipelineID identifies a sales pipeline within a sub-account
type PipelineID int

// LaneID identifies a stage within a pipeline
type LaneID int

// TicketID identifies a deal within a lane
type TicketID int

// TagID identifies a sub-account tag
type TagID int

// ContactID identifies a sub-account contact that can be assigned to tickets
type ContactID int

// ToInt converts type alias back to int for compatibility with SQL parameters
func (id SubAccountID) ToInt() int {
	return int(id)
}

func (id PipelineID) ToInt() int {
	return int(id)
}

func (id LaneID) ToInt() int {
	return int(id)
}

func (id TicketID) ToInt() int {
	return int(id)
}

func (id TagID) ToInt() int {
	return int(id)
}

func (id ContactID) ToInt() int {
	return int(id)
}
