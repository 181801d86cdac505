package db

import (
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

func (s *pgStore) AddFavorite(profileID, imageID int) error {
	_, err := s.db.Exec(`
	INSERT INTO favorite_images (profile_id, image_id, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT DO NOTHING;`, profileID, imageID)
	if err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Int("image_id", imageID).Msg("AddFavorite failed")
	}
	return err
}

func (s *pgStore) RemoveFavorite(profileID, imageID int) error {
	_, err := s.db.Exec(`
	DELETE FROM favorite_images WHERE profile_id = $1 AND image_id = $2;`, profileID, imageID)
	if err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Int("image_id", imageID).Msg("RemoveFavorite failed")
	}
	return err
}

func (s *pgStore) ListFavorites(profileID int) ([]model.EntryImage, error) {
	var out []model.EntryImage
	query := `
	SELECT i.id, i.profile_id, i.category, i.url, i.created_at
	  FROM favorite_images f
	  JOIN entry_images i ON i.id = f.image_id
	 WHERE f.profile_id = $1
	 ORDER BY f.created_at DESC, f.id DESC;`
	if err := s.db.Select(&out, query, profileID); err != nil {
		log.Error().Err(err).Int("profile_id", profileID).Msg("ListFavorites failed")
		return nil, err
	}
	return out, nil
}

// ListImageFollowers returns the profile ids that favorited any image
// owned by the given contributor. Used to fan out join notifications.
func (s *pgStore) ListImageFollowers(ownerProfileID int) ([]int, error) {
	var out []int
	query := `
	SELECT DISTINCT f.profile_id
	  FROM favorite_images f
	  JOIN entry_images i ON i.id = f.image_id
	 WHERE i.profile_id = $1
	 ORDER BY f.profile_id;`
	if err := s.db.Select(&out, query, ownerProfileID); err != nil {
		log.Error().Err(err).Int("profile_id", ownerProfileID).Msg("ListImageFollowers failed")
		return nil, err
	}
	return out, nil
}
