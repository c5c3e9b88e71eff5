package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"go.uber.org/zap"
)

// ストアオーナーの商品管理
type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
	log          *zap.Logger
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
	log *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// 作成・更新の入力。更新ではnilの項目は変更しない
type ProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *string  `json:"price"`
	Inventory     *int     `json:"inventory"`
	CategoryID    *string  `json:"category"`
	SubcategoryID *string  `json:"subcategory"`
	Images        []string `json:"images"`
	Active        *bool    `json:"active"`
}

func (in ProductInput) form() validator.ProductForm {
	return validator.ProductForm{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Inventory:   in.Inventory,
		CategoryID:  in.CategoryID,
		Images:      in.Images,
	}
}

// 商品追加（ストアの商品上限チェックあり）
func (u *ProductUsecase) AddProduct(ctx context.Context, store model.Store, in ProductInput) (model.Product, error) {
	if err := validator.ValidateProduct(in.form(), true); err != nil {
		return model.Product{}, fromValidation(err)
	}

	count, err := u.productRepo.Count(ctx, filter.Eq("store", store.ID))
	if err != nil {
		u.log.Error("count products failed", zap.String("store", store.ID), zap.Error(err))
		return model.Product{}, errDB()
	}
	if store.ProductLimit > 0 && count >= int64(store.ProductLimit) {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "product limit reached for this store")
	}

	p := model.Product{
		StoreID: store.ID,
		Active:  true,
		Images:  []string{},
	}
	if err := u.apply(ctx, &p, in); err != nil {
		return model.Product{}, err
	}

	if err := u.productRepo.Create(ctx, &p); err != nil {
		u.log.Error("create product failed", zap.String("store", store.ID), zap.Error(err))
		return model.Product{}, errDB()
	}
	return p, nil
}

// 入力を商品に反映。カテゴリとサブカテゴリは存在と親子関係を確認
func (u *ProductUsecase) apply(ctx context.Context, p *model.Product, in ProductInput) error {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		price, err := model.ParseMoney(*in.Price)
		if err != nil {
			return NewValidationError(map[string]string{"price": "Must be a valid price"})
		}
		p.Price = price
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Active != nil {
		p.Active = *in.Active
	}

	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError(map[string]string{"category": "Unknown category"})
			}
			return errDB()
		}
		if p.CategoryID != *in.CategoryID {
			// カテゴリが変わったらサブカテゴリは外す
			p.SubcategoryID = nil
		}
		p.CategoryID = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		if *in.SubcategoryID == "" {
			p.SubcategoryID = nil
			return nil
		}
		sub, err := u.categoryRepo.FindSubcategoryByID(ctx, *in.SubcategoryID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError(map[string]string{"subcategory": "Unknown subcategory"})
			}
			return errDB()
		}
		if sub.CategoryID != p.CategoryID {
			return NewValidationError(map[string]string{"subcategory": "Subcategory does not belong to category"})
		}
		id := sub.ID
		p.SubcategoryID = &id
	}
	return nil
}

// ストアの商品を1件取得。他ストアの商品は404
func (u *ProductUsecase) GetStoreProduct(ctx context.Context, store model.Store, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && p.StoreID != store.ID) {
		return model.Product{}, errNotFound()
	}
	if err != nil {
		u.log.Error("get product failed", zap.String("product", productID), zap.Error(err))
		return model.Product{}, errDB()
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorID string, store model.Store, productID string, in ProductInput) (model.Product, error) {
	if err := validator.ValidateProduct(in.form(), false); err != nil {
		return model.Product{}, fromValidation(err)
	}

	p, err := u.GetStoreProduct(ctx, store, productID)
	if err != nil {
		return model.Product{}, err
	}
	before := p

	if err := u.apply(ctx, &p, in); err != nil {
		return model.Product{}, err
	}
	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, errNotFound()
		}
		u.log.Error("update product failed", zap.String("product", productID), zap.Error(err))
		return model.Product{}, errDB()
	}

	u.writeAudit(ctx, actorID, store.ID, model.AuditActionUpdateProduct, p.ID, before, p)
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorID string, store model.Store, productID string) error {
	p, err := u.GetStoreProduct(ctx, store, productID)
	if err != nil {
		return err
	}
	if err := u.productRepo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		u.log.Error("delete product failed", zap.String("product", productID), zap.Error(err))
		return errDB()
	}

	u.writeAudit(ctx, actorID, store.ID, model.AuditActionDeleteProduct, p.ID, p, nil)
	return nil
}

// 評価の更新（0〜5）
func (u *ProductUsecase) UpdateProductRating(ctx context.Context, productID string, rating float64) error {
	if err := validator.ValidateRating(rating); err != nil {
		return fromValidation(err)
	}
	if err := u.productRepo.UpdateRating(ctx, productID, rating); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		u.log.Error("update rating failed", zap.String("product", productID), zap.Error(err))
		return errDB()
	}
	return nil
}

// ダッシュボードの商品一覧（非公開含む）
func (u *ProductUsecase) ListStoreProducts(ctx context.Context, storeID string, page filter.Page, search string, sort string) filter.Result[model.Product] {
	items, total, err := u.productRepo.List(ctx, filter.Query{
		Filter: filter.And(filter.Eq("store", storeID), filter.Like("name", search)),
		Sort:   parseSort(sort, filter.Sorts{filter.Desc("created")}, productSortFields...),
		Page:   page,
	})
	if err != nil {
		u.log.Error("list store products failed", zap.String("store", storeID), zap.Error(err))
		return filter.Empty[model.Product]()
	}
	return filter.NewResult(items, page, total)
}

func (u *ProductUsecase) writeAudit(ctx context.Context, actorID, storeID string, action model.AuditAction, productID string, before, after any) {
	entry := model.AuditLog{
		ActorUserID:  actorID,
		StoreID:      storeID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
	}
	if before != nil {
		b, _ := json.Marshal(before)
		entry.BeforeJSON = string(b)
	}
	if after != nil {
		b, _ := json.Marshal(after)
		entry.AfterJSON = string(b)
	}
	if err := u.auditRepo.Create(ctx, &entry); err != nil {
		u.log.Warn("audit log failed", zap.String("action", string(action)), zap.Error(err))
	}
}
