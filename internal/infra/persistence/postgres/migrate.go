package postgres

import (
	"context"

	"quill/internal/errors"
	"quill/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// autoMigrate brings the schema up to date at startup. Table order matters:
// posts reference users, comments reference both.
func autoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.PostModel{},
		&model.CommentModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
