package models

import "time"

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Post belongs to exactly one user. FetchedAt is stamped by the
// cache at insertion time, not by the upstream; it is the basis of
// the "latest" ordering.
type Post struct {
	ID        int       `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Comment struct {
	ID      int    `json:"id"`
	PostID  int    `json:"post_id"`
	Content string `json:"content"`
}

// RankedUser is computed, never stored.
type RankedUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	PostCount   int    `json:"post_count"`
}
