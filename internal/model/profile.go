package model

import "time"

// Profile roles. Contributors submit entry images and compete; users
// (judges) join contests to vote.
const (
	RoleContributor = "contributor"
	RoleUser        = "user"
)

// Profile carries the demographic and physical attributes used for
// contest eligibility matching.
type Profile struct {
	ID            int        `db:"id" json:"id"`
	UserID        int        `db:"user_id" json:"user_id"`
	Role          string     `db:"role" json:"role"`
	ScreenName    string     `db:"screen_name" json:"screen_name"`
	LegalFullName *string    `db:"legal_full_name" json:"legal_full_name"`
	DateOfBirth   *time.Time `db:"date_of_birth" json:"date_of_birth"`
	IsOver18      bool       `db:"is_over_18" json:"is_over_18"`
	PhoneNumber   *string    `db:"phone_number" json:"phone_number"`
	City          *string    `db:"city" json:"city"`
	Country       *string    `db:"country" json:"country"`
	Bio           *string    `db:"bio" json:"bio"`
	Gender        *string    `db:"gender" json:"gender"`
	Height        *string    `db:"height" json:"height"`
	Weight        *string    `db:"weight" json:"weight"`
	ShoeSize      *string    `db:"shoe_size" json:"shoe_size"`
	SkinTone      *string    `db:"skin_tone" json:"skin_tone"`
	HairColor     *string    `db:"hair_color" json:"hair_color"`
	BodyType      *string    `db:"body_type" json:"body_type"`
	BustSize      *string    `db:"bust_size" json:"bust_size"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// AttributeValues flattens the profile's physical attributes into the
// category map that Contest.Attributes matches against.
func (p *Profile) AttributeValues() map[string]string {
	out := make(map[string]string)
	put := func(key string, v *string) {
		if v != nil && *v != "" {
			out[key] = *v
		}
	}
	put("gender", p.Gender)
	put("height", p.Height)
	put("weight", p.Weight)
	put("shoe_size", p.ShoeSize)
	put("skin_tone", p.SkinTone)
	put("hair_color", p.HairColor)
	put("body_type", p.BodyType)
	put("bust_size", p.BustSize)
	return out
}

// ProfileUpdate carries the optional fields a profile owner may change.
type ProfileUpdate struct {
	ScreenName    *string
	LegalFullName *string
	PhoneNumber   *string
	City          *string
	Country       *string
	Bio           *string
	Gender        *string
	Height        *string
	Weight        *string
	ShoeSize      *string
	SkinTone      *string
	HairColor     *string
	BodyType      *string
	BustSize      *string
}

// Admin marks a profile as holding the administrative capability.
// Contest creation and the generation triggers require it explicitly.
type Admin struct {
	ID        int       `db:"id" json:"id"`
	ProfileID int       `db:"profile_id" json:"profile_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
