package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

const uniqueViolation = "23505"

// UserStore is the gorm backed store.UserStore
type UserStore struct {
	db *database.DBinstanceStruct
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore returns a UserStore using db
func NewUserStore(db *database.DBinstanceStruct) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserStore) first(ctx context.Context, cond string, arg string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	values := map[string]interface{}{
		"name":      update.Name,
		"last_name": update.LastName,
		"email":     update.Email,
		"location":  update.Location,
	}
	if update.Avatar != "" {
		values["avatar"] = update.Avatar
		values["avatar_key"] = update.AvatarKey
	}

	var user model.User
	res := s.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}

func (s *UserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&total).Error
	return total, err
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrDuplicate
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}
