package packets

type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,oneof=contributor user"`
	ScreenName string `json:"screen_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	ScreenName    *string `json:"screen_name"`
	LegalFullName *string `json:"legal_full_name"`
	PhoneNumber   *string `json:"phone_number"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Bio           *string `json:"bio"`
	Gender        *string `json:"gender"`
	Height        *string `json:"height"`
	Weight        *string `json:"weight"`
	ShoeSize      *string `json:"shoe_size"`
	SkinTone      *string `json:"skin_tone"`
	HairColor     *string `json:"hair_color"`
	BodyType      *string `json:"body_type"`
	BustSize      *string `json:"bust_size"`
}

// JoinContestRequest lets a contributor pick a specific entry image;
// when absent the first uploaded image matching the contest category is
// entered automatically.
type JoinContestRequest struct {
	EntryImageID *int `json:"entry_image_id"`
}

type CastVoteRequest struct {
	ParticipantID int `json:"participant_id" binding:"required"`
}

type AddFavoriteRequest struct {
	ImageID int `json:"image_id" binding:"required"`
}
