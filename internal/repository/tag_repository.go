package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/blog-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// List returns all tags ordered by name
func (r *GormTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreate inserts the missing names, skipping rows that collide with the
// unique name index, then reads every tag back. The result follows the order
// of names. A repository built on a transaction runs both statements in it.
func (r *GormTagRepository) GetOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	candidates := make([]models.Tag, len(names))
	for i, name := range names {
		candidates[i] = models.Tag{Name: name}
	}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidates).Error; err != nil {
		return nil, err
	}

	var stored []models.Tag
	if err := db.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]models.Tag, len(stored))
	for _, tag := range stored {
		byName[tag.Name] = tag
	}

	tags := make([]models.Tag, 0, len(names))
	seen := make(map[uint64]struct{}, len(names))
	for _, name := range names {
		tag, ok := byName[name]
		if !ok {
			// case-insensitive collations return the stored spelling
			for _, s := range stored {
				if _, dup := seen[s.ID]; !dup && strings.EqualFold(s.Name, name) {
					tag, ok = s, true
					break
				}
			}
		}
		if !ok {
			continue
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		tags = append(tags, tag)
	}

	return tags, nil
}
