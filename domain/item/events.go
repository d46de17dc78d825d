package item

import "time"

// Event is a lifecycle event emitted after a successful mutation.
type Event interface {
	EventType() string
	AggregateID() string
}

// ItemCreated is emitted after an item is stored for the first time.
type ItemCreated struct {
	Item       Item      `json:"item"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ItemCreated) EventType() string   { return "item.created" }
func (e ItemCreated) AggregateID() string { return e.Item.ItemID }

// ItemUpdated is emitted after a partial update is written back.
type ItemUpdated struct {
	Item       Item      `json:"item"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ItemUpdated) EventType() string   { return "item.updated" }
func (e ItemUpdated) AggregateID() string { return e.Item.ItemID }

// ItemDeleted is emitted after an item is removed.
type ItemDeleted struct {
	ItemID     string    `json:"itemId"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ItemDeleted) EventType() string   { return "item.deleted" }
func (e ItemDeleted) AggregateID() string { return e.ItemID }
