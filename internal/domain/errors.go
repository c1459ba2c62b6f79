package domain

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrShopNotFound        = errors.New("shop not found")
	ErrPriceRecordNotFound = errors.New("price record not found")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrDuplicateID         = errors.New("duplicate id")
)
