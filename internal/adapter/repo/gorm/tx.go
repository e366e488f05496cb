package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type sessionKey struct{}

// session returns the transaction carried by ctx, or base when the call is
// not running inside RunInTx. Every repo method goes through this so a
// multi-record step, such as activating an exclusivity lockout, commits or
// rolls back as one unit.
func session(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(sessionKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return base
}

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, sessionKey{}, tx))
	})
}
