package postgres

import (
	"context"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postRepository implements the domain.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// FindByID retrieves a single post by its unique ID.
func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).First(&postM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// ListAll returns every post ordered by ID ascending.
func (repo *postRepository) ListAll(ctx context.Context) ([]*entity.Post, error) {
	var postsM []model.PostModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&postsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return toPostDomainSlice(postsM), nil
}

// ListByUserID returns the posts owned by the given user ordered by ID ascending.
func (repo *postRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Post, error) {
	var postsM []model.PostModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&postsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list posts by user")
	}

	return toPostDomainSlice(postsM), nil
}

// Create persists a new post entity to the database.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Update persists the mutable fields of an existing post. The RETURNING
// clause feeds the row back so the entity carries the refreshed updated_at.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	postM := model.PostModel{ID: post.ID}
	result := repo.db.WithContext(ctx).
		Model(&postM).
		Clauses(clause.Returning{}).
		Updates(map[string]any{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Delete removes the post. The ON DELETE CASCADE constraint on comments.post_id
// removes the post's comments in the same statement.
func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.PostModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPostDomain converts a GORM PostModel to a domain Post entity.
func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toPostDomainSlice(data []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, 0, len(data))
	for i := range data {
		posts = append(posts, toPostDomain(&data[i]))
	}

	return posts
}

// fromPostDomain converts a domain Post entity to a GORM PostModel for persistence.
func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:      data.ID,
		UserID:  data.UserID,
		Title:   data.Title,
		Content: data.Content,
	}
}
