package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Order{},
		&domain.Sale{},
		&domain.Note{},
		&domain.BackDoorAccount{},
		&domain.BackDoorLogin{},
		&domain.Setting{},
	)
}

func first[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var m T
	err := db.Where(query, args...).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func mustExist[T any](tx *gorm.DB, query string, args ...any) error {
	var n int64
	if err := tx.Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// flip negates a boolean column in place so concurrent toggles never read-modify-write in Go.
func flip[T any](tx *gorm.DB, id, column string) (*T, error) {
	if err := mustExist[T](tx, "id = ?", id); err != nil {
		return nil, err
	}
	res := tx.Model(new(T)).Where("id = ?", id).
		Update(column, gorm.Expr("NOT "+column))
	if res.Error != nil {
		return nil, res.Error
	}
	var m T
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Not every driver translates its error, fall back to the message.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// foldKey lowercases s with Unicode simple case mapping and treats dotless ı
// as i, so Turkish İ/I/ı/i all compare equal.
func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}, strings.ToLower(s))
}
