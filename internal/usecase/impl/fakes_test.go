package impl

import (
	"context"
	"sync"
	"time"

	"quill/internal/domain/entity"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"

	"github.com/pkg/errors"
)

// In-memory fakes standing in for the GORM repositories. They implement the
// same sentinel error contract, which is what the services branch on.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		copied := *user

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*entity.Post

	createErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*entity.Post)}
}

func (r *fakePostRepo) FindByID(_ context.Context, id int64) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post, ok := r.posts[id]; ok {
		copied := *post

		return &copied, nil
	}

	return nil, repository.ErrPostNotFound
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]*entity.Post, 0, len(r.posts))
	for id := int64(1); id <= r.nextID; id++ {
		if post, ok := r.posts[id]; ok {
			copied := *post
			posts = append(posts, &copied)
		}
	}

	return posts, nil
}

func (r *fakePostRepo) ListByUserID(_ context.Context, userID int64) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]*entity.Post, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if post, ok := r.posts[id]; ok && post.UserID == userID {
			copied := *post
			posts = append(posts, &copied)
		}
	}

	return posts, nil
}

func (r *fakePostRepo) Create(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	r.nextID++
	post.ID = r.nextID
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	copied := *post
	r.posts[post.ID] = &copied

	return nil
}

func (r *fakePostRepo) Update(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.ID]
	if !ok {
		return repository.ErrPostNotFound
	}

	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = time.Now()
	post.CreatedAt = stored.CreatedAt
	post.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return repository.ErrPostNotFound
	}

	delete(r.posts, id)

	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*entity.Comment)}
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment, ok := r.comments[id]; ok {
		copied := *comment

		return &copied, nil
	}

	return nil, repository.ErrCommentNotFound
}

func (r *fakeCommentRepo) ListAll(_ context.Context) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments := make([]*entity.Comment, 0, len(r.comments))
	for id := int64(1); id <= r.nextID; id++ {
		if comment, ok := r.comments[id]; ok {
			copied := *comment
			comments = append(comments, &copied)
		}
	}

	return comments, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	comment.ID = r.nextID
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	copied := *comment
	r.comments[comment.ID] = &copied

	return nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[comment.ID]
	if !ok {
		return repository.ErrCommentNotFound
	}

	stored.Content = comment.Content
	stored.UpdatedAt = time.Now()
	comment.CreatedAt = stored.CreatedAt
	comment.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}

	delete(r.comments, id)

	return nil
}

// fakeTxManager runs the callback directly; the fakes have no transactions.
type fakeTxManager struct {
	userRepo    *fakeUserRepo
	postRepo    *fakePostRepo
	commentRepo *fakeCommentRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) UserRepo() repository.UserRepository {
	return m.userRepo
}

func (m *fakeTxManager) PostRepo() repository.PostRepository {
	return m.postRepo
}

func (m *fakeTxManager) CommentRepo() repository.CommentRepository {
	return m.commentRepo
}

// fakeHasher marks hashes with a prefix so tests can assert plaintext never
// reaches the repository.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	issueErr error
}

func (s *fakeTokenService) Issue(username string) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token-for-" + username, nil
}

func (s *fakeTokenService) Verify(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

// fakeNotifier records submissions and signals each one on a channel so
// tests can wait for the fire-and-forget goroutine.
type fakeNotifier struct {
	mu        sync.Mutex
	sent      []*service.EmailNotification
	delivered chan struct{}

	notifyErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{delivered: make(chan struct{}, 16)}
}

func (n *fakeNotifier) Notify(_ context.Context, notification *service.EmailNotification) error {
	n.mu.Lock()
	n.sent = append(n.sent, notification)
	n.mu.Unlock()

	n.delivered <- struct{}{}

	if n.notifyErr != nil {
		return n.notifyErr
	}

	return nil
}

func (n *fakeNotifier) Close() error {
	return nil
}

func (n *fakeNotifier) notifications() []*service.EmailNotification {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*service.EmailNotification(nil), n.sent...)
}
