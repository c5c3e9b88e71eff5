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
	"storefront/internal/slug"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StoreUsecase struct {
	stores   repo.StoreRepository
	products repo.ProductRepository
	audit    repo.AuditLogRepository
	log      *zap.Logger
}

// DI
func NewStoreUsecase(stores repo.StoreRepository, products repo.ProductRepository, audit repo.AuditLogRepository, log *zap.Logger) *StoreUsecase {
	return &StoreUsecase{stores: stores, products: products, audit: audit, log: log}
}

// nilの項目は変更しない
type StoreInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// ユーザーのプラン使用状況
type PlanMetrics struct {
	Plan                 model.StorePlan `json:"subscriptionPlan"`
	StoreCount           int64           `json:"storeCount"`
	StoreLimit           int64           `json:"storeLimit"`
	ProductCount         int64           `json:"productCount"`
	ProductLimit         int64           `json:"productLimit"`
	StoreLimitExceeded   bool            `json:"storeLimitExceeded"`
	ProductLimitExceeded bool            `json:"productLimitExceeded"`
}

// ストア作成（free プラン、上限チェックあり）
func (u *StoreUsecase) CreateStore(ctx context.Context, userID string, in StoreInput) (model.Store, error) {
	if userID == "" {
		return model.Store{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validator.ValidateStore(validator.StoreForm(in), true); err != nil {
		return model.Store{}, fromValidation(err)
	}

	metrics, err := u.planMetrics(ctx, userID)
	if err != nil {
		u.log.Error("plan metrics failed", zap.String("user", userID), zap.Error(err))
		return model.Store{}, errDB()
	}
	if metrics.StoreLimitExceeded {
		return model.Store{}, NewHTTPError(http.StatusForbidden, "store limit reached for your plan")
	}

	name := strings.TrimSpace(*in.Name)
	storeSlug, err := u.resolveSlug(ctx, name, in.Slug, "")
	if err != nil {
		return model.Store{}, err
	}

	s := model.Store{
		Name:         name,
		Slug:         storeSlug,
		Description:  strings.TrimSpace(valueOr(in.Description, "")),
		UserID:       userID,
		Plan:         model.StorePlanFree,
		ProductLimit: model.DefaultProductLimit,
		TagLimit:     model.DefaultTagLimit,
		VariantLimit: model.DefaultVariantLimit,
		Active:       true,
	}
	if err := u.stores.Create(ctx, &s); err != nil {
		u.log.Error("create store failed", zap.String("user", userID), zap.Error(err))
		return model.Store{}, errDB()
	}
	return s, nil
}

// 指定slugが使用済みなら409。名前から作ったslugが重複したら末尾に乱数を付ける
func (u *StoreUsecase) resolveSlug(ctx context.Context, name string, requested *string, selfID string) (string, error) {
	explicit := requested != nil && strings.TrimSpace(*requested) != ""
	s := slug.Make(name)
	if explicit {
		s = strings.ToLower(strings.TrimSpace(*requested))
	}
	if s == "" {
		s = "store"
	}

	for attempt := 0; attempt < 3; attempt++ {
		existing, err := u.stores.FindBySlug(ctx, s)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && existing.ID == selfID) {
			return s, nil
		}
		if err != nil {
			u.log.Error("find store by slug failed", zap.String("slug", s), zap.Error(err))
			return "", errDB()
		}
		if explicit {
			return "", NewHTTPError(http.StatusConflict, "slug already taken")
		}
		s = slug.Make(name) + "-" + uuid.NewString()[:6]
	}
	return "", NewHTTPError(http.StatusConflict, "slug already taken")
}

func (u *StoreUsecase) UpdateStore(ctx context.Context, store model.Store, in StoreInput) (model.Store, error) {
	if err := validator.ValidateStore(validator.StoreForm(in), false); err != nil {
		return model.Store{}, fromValidation(err)
	}

	if in.Name != nil {
		store.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		store.Description = strings.TrimSpace(*in.Description)
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		s, err := u.resolveSlug(ctx, store.Name, in.Slug, store.ID)
		if err != nil {
			return model.Store{}, err
		}
		store.Slug = s
	}

	if err := u.stores.Update(ctx, store); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Store{}, errNotFound()
		}
		u.log.Error("update store failed", zap.String("store", store.ID), zap.Error(err))
		return model.Store{}, errDB()
	}
	return store, nil
}

// ストアと商品を削除（注文は残す）
func (u *StoreUsecase) DeleteStore(ctx context.Context, actorID string, store model.Store) error {
	if err := u.stores.Delete(ctx, store.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		u.log.Error("delete store failed", zap.String("store", store.ID), zap.Error(err))
		return errDB()
	}

	before, _ := json.Marshal(store)
	u.writeAudit(ctx, model.AuditLog{
		ActorUserID:  actorID,
		StoreID:      store.ID,
		Action:       model.AuditActionDeleteStore,
		ResourceType: model.AuditResourceStore,
		ResourceID:   store.ID,
		BeforeJSON:   string(before),
	})
	return nil
}

func (u *StoreUsecase) GetStore(ctx context.Context, id string) (model.Store, error) {
	s, err := u.stores.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Store{}, errNotFound()
	}
	if err != nil {
		u.log.Error("get store failed", zap.String("store", id), zap.Error(err))
		return model.Store{}, errDB()
	}
	return s, nil
}

// ダッシュボード用。自分のストアでなければ403
func (u *StoreUsecase) Authorize(ctx context.Context, userID string, storeID string) (model.Store, error) {
	s, err := u.GetStore(ctx, storeID)
	if err != nil {
		return model.Store{}, err
	}
	if s.UserID != userID {
		return model.Store{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return s, nil
}

// 新しい順
func (u *StoreUsecase) ListStoresByUser(ctx context.Context, userID string) []model.Store {
	items, _, err := u.stores.List(ctx, filter.Query{
		Filter: filter.Eq("user", userID),
		Sort:   filter.Sorts{filter.Desc("created")},
	})
	if err != nil {
		u.log.Error("list stores failed", zap.String("user", userID), zap.Error(err))
		return []model.Store{}
	}
	return items
}

// 公開ストア8件と商品数。商品数は並行に数える
func (u *StoreUsecase) GetFeaturedStores(ctx context.Context) []model.StoreWithProductCount {
	stores, _, err := u.stores.List(ctx, filter.Query{
		Filter: filter.Eq("active", true),
		Sort:   filter.Sorts{filter.Desc("created")},
		Page:   filter.First(featuredLimit),
	})
	if err != nil {
		u.log.Error("featured stores failed", zap.Error(err))
		return []model.StoreWithProductCount{}
	}

	out := make([]model.StoreWithProductCount, len(stores))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range stores {
		out[i] = model.StoreWithProductCount{Store: s}
		g.Go(func() error {
			n, err := u.products.Count(gctx, filter.And(filter.Eq("store", s.ID), filter.Eq("active", true)))
			if err != nil {
				// 数えられなければ0のまま
				u.log.Warn("count store products failed", zap.String("store", s.ID), zap.Error(err))
				return nil
			}
			out[i].ProductCount = n
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// プラン使用状況。失敗時は0
func (u *StoreUsecase) GetUserPlanMetrics(ctx context.Context, userID string) PlanMetrics {
	m, err := u.planMetrics(ctx, userID)
	if err != nil {
		u.log.Error("plan metrics failed", zap.String("user", userID), zap.Error(err))
		limits := model.LimitsFor(model.StorePlanFree)
		return PlanMetrics{Plan: model.StorePlanFree, StoreLimit: limits.Stores, ProductLimit: limits.Products}
	}
	return m
}

func (u *StoreUsecase) planMetrics(ctx context.Context, userID string) (PlanMetrics, error) {
	stores, _, err := u.stores.List(ctx, filter.Query{
		Filter: filter.Eq("user", userID),
		Sort:   filter.Sorts{filter.Desc("created")},
	})
	if err != nil {
		return PlanMetrics{}, err
	}

	// 最新ストアのプランをユーザーのプランとみなす
	plan := model.StorePlanFree
	ids := make([]string, 0, len(stores))
	for i, s := range stores {
		if i == 0 && s.Plan != "" {
			plan = s.Plan
		}
		ids = append(ids, s.ID)
	}

	var products int64
	if len(ids) > 0 {
		products, err = u.products.Count(ctx, filter.In("store", ids...))
		if err != nil {
			return PlanMetrics{}, err
		}
	}

	limits := model.LimitsFor(plan)
	storeCount := int64(len(stores))
	return PlanMetrics{
		Plan:                 plan,
		StoreCount:           storeCount,
		StoreLimit:           limits.Stores,
		ProductCount:         products,
		ProductLimit:         limits.Products,
		StoreLimitExceeded:   storeCount >= limits.Stores,
		ProductLimitExceeded: products >= limits.Products,
	}, nil
}

// ダッシュボードの操作ログ（新しい順）
func (u *StoreUsecase) ListActivity(ctx context.Context, storeID string, page filter.Page) filter.Result[model.AuditLog] {
	items, total, err := u.audit.List(ctx, filter.Query{
		Filter: filter.Eq("store", storeID),
		Sort:   filter.Sorts{filter.Desc("created")},
		Page:   page,
	})
	if err != nil {
		u.log.Error("list activity failed", zap.String("store", storeID), zap.Error(err))
		return filter.Empty[model.AuditLog]()
	}
	return filter.NewResult(items, page, total)
}

// 監査ログは失敗しても処理を止めない
func (u *StoreUsecase) writeAudit(ctx context.Context, entry model.AuditLog) {
	if err := u.audit.Create(ctx, &entry); err != nil {
		u.log.Warn("audit log failed", zap.String("action", string(entry.Action)), zap.Error(err))
	}
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
