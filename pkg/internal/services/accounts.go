package services

import (
	"context"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Directory resolves the accounts and groups feeds are scoped to.
type Directory struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db, validate: validator.New()}
}

// EnsureAccount mirrors an identity of the auth service, updating its name and nick when changed.
func (d *Directory) EnsureAccount(ctx context.Context, id uint, name, nick string) (models.Account, error) {
	name = strings.TrimSpace(name)
	if id == 0 || len(name) == 0 {
		return models.Account{}, fmt.Errorf("%w: account must have an id and a name", ErrValidation)
	}

	account := models.Account{
		BaseModel: models.BaseModel{ID: id},
		Name:      name,
		Nick:      nick,
	}
	if err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "nick", "updated_at"}),
		}).
		Create(&account).Error; err != nil {
		return account, fmt.Errorf("unable to save account: %v", err)
	}
	return d.GetAccount(ctx, id)
}

func (d *Directory) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	var account models.Account
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return account, wrapLookupErr(err, "account %d", id)
	}
	return account, nil
}

func (d *Directory) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	var account models.Account
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&account).Error; err != nil {
		return account, wrapLookupErr(err, "account %q", name)
	}
	return account, nil
}
