package helper

import (
	"fmt"
	"movie_reservation/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueMovieSlug derives a slug from the title, suffixing -1, -2... on collision.
// excludeId skips the movie being renamed.
func GenerateUniqueMovieSlug(tx *gorm.DB, title string, excludeId uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "movie"
	}
	result := base
	for i := 1; ; i++ {
		var count int64
		if err := tx.Model(&model.Movie{}).
			Where("slug = ? AND id <> ?", result, excludeId).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
