package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/admintools/user-management-api/internal/database"
	"github.com/admintools/user-management-api/internal/models"
	"github.com/admintools/user-management-api/internal/utils"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// List retrieves users with filtering, sorting and pagination
func (r *GormUserRepository) List(query ListQuery) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})

	if strings.TrimSpace(query.SearchTerm) != "" {
		q = q.Where("username LIKE ? ESCAPE '\\'", likePattern(query.SearchTerm))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortColumn != "" {
		q = q.Order(orderClause(userSortColumn(query.SortColumn), query.SortOrder))
	}

	var users []models.User
	params := utils.PaginationParams{
		Page:     query.Page,
		PageSize: query.PageSize,
		Offset:   (query.Page - 1) * query.PageSize,
	}
	if err := q.Scopes(database.Paginate(params)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update overwrites username and password hash of an existing user.
// Status is deliberately left untouched.
func (r *GormUserRepository) Update(user *models.User) (*models.User, error) {
	var current models.User
	if err := r.db.First(&current, user.ID).Error; err != nil {
		return nil, err
	}

	current.Username = user.Username
	current.PasswordHash = user.PasswordHash

	if err := r.db.Save(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

// Delete removes a user and its permission assignments in a transaction
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// userSortColumn maps a requested sort column to a real column,
// falling back to the primary key for unrecognized names.
func userSortColumn(sortColumn string) string {
	switch strings.ToLower(sortColumn) {
	case "username":
		return "username"
	case "status":
		return "status"
	default:
		return "id"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring LIKE pattern with the SQL wildcards in the
// search term escaped, so a term like "%" matches a literal percent sign.
// Queries using it must carry an ESCAPE '\' clause.
func likePattern(searchTerm string) string {
	return "%" + likeEscaper.Replace(searchTerm) + "%"
}

// orderClause builds the ORDER BY fragment. Direction is ascending unless
// sortOrder equals "desc" case-insensitively. Columns are whitelisted by the
// callers, never taken from user input directly.
func orderClause(column, sortOrder string) string {
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}
