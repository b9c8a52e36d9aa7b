package database

import (
	"fmt"

	"github.com/yukikurage/blog-api/internal/logger"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by paginated listings.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// newest-first comment pages of a single article
		{"comments", "idx_comments_article_created", "article_id, created_at"},
		// reverse lookup for tag filters
		{"article_tags", "idx_article_tags_tag_id", "tag_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("created index", "index", idx.name, "table", idx.table)
	}

	return nil
}
