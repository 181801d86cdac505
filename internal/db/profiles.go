package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

const profileColumns = `
	id, user_id, role, screen_name, legal_full_name, date_of_birth,
	is_over_18, phone_number, city, country, bio,
	gender, height, weight, shoe_size, skin_tone, hair_color,
	body_type, bust_size, created_at, updated_at`

func (s *pgStore) CreateProfile(userID int, role, screenName string) (model.Profile, error) {
	var p model.Profile
	query := `
	INSERT INTO profiles (user_id, role, screen_name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING` + profileColumns + `;`
	if err := s.db.Get(&p, query, userID, role, screenName); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("CreateProfile failed")
		return model.Profile{}, err
	}
	return p, nil
}

func (s *pgStore) GetProfileByUserID(userID int) (*model.Profile, error) {
	var p model.Profile
	query := `SELECT` + profileColumns + ` FROM profiles WHERE user_id = $1;`
	if err := s.db.Get(&p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("user_id", userID).Msg("GetProfileByUserID failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) GetProfileByID(id int) (*model.Profile, error) {
	var p model.Profile
	query := `SELECT` + profileColumns + ` FROM profiles WHERE id = $1;`
	if err := s.db.Get(&p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("profile_id", id).Msg("GetProfileByID failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) UpdateProfile(profileID int, upd model.ProfileUpdate) error {
	res, err := s.db.Exec(`
	UPDATE profiles
	SET
	screen_name     = COALESCE($2,  screen_name),
	legal_full_name = COALESCE($3,  legal_full_name),
	phone_number    = COALESCE($4,  phone_number),
	city            = COALESCE($5,  city),
	country         = COALESCE($6,  country),
	bio             = COALESCE($7,  bio),
	gender          = COALESCE($8,  gender),
	height          = COALESCE($9,  height),
	weight          = COALESCE($10, weight),
	shoe_size       = COALESCE($11, shoe_size),
	skin_tone       = COALESCE($12, skin_tone),
	hair_color      = COALESCE($13, hair_color),
	body_type       = COALESCE($14, body_type),
	bust_size       = COALESCE($15, bust_size),
	updated_at      = now()
	WHERE id = $1;`,
		profileID,
		upd.ScreenName, upd.LegalFullName, upd.PhoneNumber, upd.City,
		upd.Country, upd.Bio, upd.Gender, upd.Height, upd.Weight,
		upd.ShoeSize, upd.SkinTone, upd.HairColor, upd.BodyType, upd.BustSize,
	)
	if err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("UpdateProfile failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such profile")
	}
	return nil
}

func (s *pgStore) GetAdminByUserID(userID int) (*model.Admin, error) {
	var a model.Admin
	query := `
	SELECT a.id, a.profile_id, a.created_at, a.updated_at
	FROM admins a
	JOIN profiles p ON p.id = a.profile_id
	WHERE p.user_id = $1;
	`
	if err := s.db.Get(&a, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("user_id", userID).Msg("GetAdminByUserID failed")
		return nil, err
	}
	return &a, nil
}

func (s *pgStore) CreateAdmin(profileID int) (model.Admin, error) {
	var a model.Admin
	query := `
	INSERT INTO admins (profile_id, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING id, profile_id, created_at, updated_at;
	`
	if err := s.db.Get(&a, query, profileID); err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("CreateAdmin failed")
		return model.Admin{}, err
	}
	return a, nil
}
