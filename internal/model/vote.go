package model

import "time"

// Vote ranks one participant of a contest, one vote per voter per contest.
type Vote struct {
	ID            int       `db:"id" json:"id"`
	ContestID     int       `db:"contest_id" json:"contest_id"`
	ParticipantID int       `db:"participant_id" json:"participant_id"`
	VoterID       int       `db:"voter_id" json:"voter_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ParticipantResult is a tally row for a contest's results view.
type ParticipantResult struct {
	ParticipantID int    `db:"participant_id" json:"participant_id"`
	ProfileID     int    `db:"profile_id" json:"profile_id"`
	ScreenName    string `db:"screen_name" json:"screen_name"`
	Votes         int    `db:"votes" json:"votes"`
}
