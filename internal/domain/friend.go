package domain

import "time"

// FriendEdge records that Owner added Friend. Edges are directional: the reverse
// edge only exists if Friend adds Owner as well.
type FriendEdge struct {
	OwnerID   int64
	FriendID  int64
	CreatedAt time.Time
	Friend    Author
}
