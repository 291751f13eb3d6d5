package domain

import "time"

// FriendEdge is a directed edge: Owner has added Target and may read
// Target's private resources. The reverse edge is independent.
type FriendEdge struct {
	OwnerID     int64     `json:"-"`
	TargetID    int64     `json:"-"`
	TargetLogin string    `json:"login"`
	AddedAt     time.Time `json:"addedAt"`
}
