package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//住所を新規作成する。IDは採番して埋める
	Create(ctx context.Context, address *model.Address) error

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID string) (model.Address, error)
}
