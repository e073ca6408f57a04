package models

const (
	EventTypeJoined = "joined"
	EventTypeVote   = "vote"
	EventTypePost   = "post"
)

// EventTimeLayout is the display timestamp stored on every event, in UTC.
const EventTimeLayout = "15:04 02.01.2006"

// NewsfeedEvent is one row of the append-only activity log. Rows are never
// updated or deleted; the auto-increment id is the log's total order and all
// reads go most-recent-first. Username and Image are snapshots of the acting
// user at insertion time and intentionally do not follow later profile edits.
type NewsfeedEvent struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Event     string `gorm:"not null" json:"event"`
	EventType string `gorm:"not null;type:varchar(20)" json:"event_type"`
	Username  string `gorm:"not null" json:"username"`
	Target    string `json:"target,omitempty"` // affected username, vote events only
	Image     string `json:"image"`
	Time      string `gorm:"column:time" json:"time"`
}

func (NewsfeedEvent) TableName() string {
	return "newsfeed"
}
