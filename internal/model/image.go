package model

import "time"

// EntryImage is a contributor's categorized upload. The category must
// match the contest category when the image is entered into a contest.
type EntryImage struct {
	ID        int       `db:"id" json:"id"`
	ProfileID int       `db:"profile_id" json:"profile_id"`
	Category  string    `db:"category" json:"category"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteImage bookmarks a contributor's image for a viewing profile,
// unique per (profile, image).
type FavoriteImage struct {
	ID        int       `db:"id" json:"id"`
	ProfileID int       `db:"profile_id" json:"profile_id"`
	ImageID   int       `db:"image_id" json:"image_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
