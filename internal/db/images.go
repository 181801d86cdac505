package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

func (s *pgStore) CreateEntryImage(profileID int, category, url string) (model.EntryImage, error) {
	var img model.EntryImage
	query := `
	INSERT INTO entry_images (profile_id, category, url, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id, profile_id, category, url, created_at;`
	if err := s.db.Get(&img, query, profileID, category, url); err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("CreateEntryImage failed")
		return model.EntryImage{}, err
	}
	return img, nil
}

func (s *pgStore) GetEntryImageByID(id int) (model.EntryImage, error) {
	var img model.EntryImage
	query := `
	SELECT id, profile_id, category, url, created_at
	  FROM entry_images
	 WHERE id = $1;`
	err := s.db.Get(&img, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EntryImage{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("image_id", id).Msg("GetEntryImageByID failed")
	}
	return img, err
}

// ListEntryImages returns a profile's uploads, oldest first so the join
// flow's auto-selection picks the first uploaded image deterministically.
func (s *pgStore) ListEntryImages(profileID int, category *string) ([]model.EntryImage, error) {
	var out []model.EntryImage
	query := `
	SELECT id, profile_id, category, url, created_at
	  FROM entry_images
	 WHERE profile_id = $1
	   AND ($2::text IS NULL OR category = $2)
	 ORDER BY created_at, id;`
	if err := s.db.Select(&out, query, profileID, category); err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("ListEntryImages failed")
		return nil, err
	}
	return out, nil
}
