package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartUsecase は cartId cookie で識別するカートの業務ロジック。
// ログイン前後どちらでも使える。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	clock        Clock
	log          *zap.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	clock Clock,
	log *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		clock:        clock,
		log:          log,
	}
}

// GET /cart の返却形
type CartResponse struct {
	ID      string            `json:"id"`
	Items   []model.CartItem  `json:"items"`
	Summary model.CartSummary `json:"summary"`
}

// cookieのカートがあれば返し、無ければ作る。createdがtrueならcookieを書き直す
func (u *CartUsecase) GetOrCreateCart(ctx context.Context, cartID string, userID *string) (model.Cart, bool, error) {
	if cartID != "" {
		cart, err := u.cartRepo.FindByID(ctx, cartID)
		if err == nil {
			return cart, false, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			u.log.Error("find cart failed", zap.String("cart", cartID), zap.Error(err))
			return model.Cart{}, false, errDB()
		}
	}

	cart := model.Cart{UserID: userID}
	if err := u.cartRepo.Create(ctx, &cart); err != nil {
		u.log.Error("create cart failed", zap.Error(err))
		return model.Cart{}, false, errDB()
	}
	return cart, true, nil
}

// 商品込みの明細（作成順）。削除済み商品の明細は除く。失敗時は空
func (u *CartUsecase) GetCartItems(ctx context.Context, cartID string) []model.CartItem {
	if cartID == "" {
		return []model.CartItem{}
	}
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		u.log.Error("list cart items failed", zap.String("cart", cartID), zap.Error(err))
		return []model.CartItem{}
	}

	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (u *CartUsecase) GetCart(ctx context.Context, cartID string) CartResponse {
	items := u.GetCartItems(ctx, cartID)
	return CartResponse{ID: cartID, Items: items, Summary: Summarize(items)}
}

// 件数と合計。見つからなければ0
func (u *CartUsecase) GetCartSummary(ctx context.Context, cartID string) model.CartSummary {
	return Summarize(u.GetCartItems(ctx, cartID))
}

// 明細の件数と合計金額
func Summarize(items []model.CartItem) model.CartSummary {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		if it.Product == nil {
			continue
		}
		count += it.Quantity
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return model.CartSummary{TotalItems: count, TotalPrice: model.NewMoney(total)}
}

// カートに追加（同一商品は数量加算）
func (u *CartUsecase) AddToCart(ctx context.Context, cartID string, productID string, quantity int) (model.CartItem, error) {
	if cartID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "cart not found")
	}
	if productID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	if quantity < 1 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		u.log.Error("find product failed", zap.String("product", productID), zap.Error(err))
		return model.CartItem{}, errDB()
	}
	if !p.Active {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "product unavailable")
	}

	item, err := u.cartItemRepo.AddQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		u.log.Error("add to cart failed", zap.String("cart", cartID), zap.String("product", productID), zap.Error(err))
		return model.CartItem{}, errDB()
	}
	item.Product = &p
	return item, nil
}

// 数量変更。0以下なら明細を削除
func (u *CartUsecase) UpdateCartItem(ctx context.Context, cartID string, cartItemID string, quantity int) error {
	if err := u.ownItem(ctx, cartID, cartItemID); err != nil {
		return err
	}

	if quantity <= 0 {
		return u.deleteItem(ctx, cartItemID)
	}
	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		u.log.Error("update cart item failed", zap.String("item", cartItemID), zap.Error(err))
		return errDB()
	}
	return nil
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, cartID string, cartItemID string) error {
	if err := u.ownItem(ctx, cartID, cartItemID); err != nil {
		return err
	}
	return u.deleteItem(ctx, cartItemID)
}

// 明細を全部消す（カートは残す）
func (u *CartUsecase) ClearCart(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	if err := u.cartItemRepo.DeleteByCartIDs(ctx, []string{cartID}); err != nil {
		u.log.Error("clear cart failed", zap.String("cart", cartID), zap.Error(err))
		return errDB()
	}
	return nil
}

// 未ログインで更新の止まったカートを消す
func (u *CartUsecase) ReapGuestCarts(ctx context.Context, olderThan time.Duration) (int64, error) {
	before := u.clock.Now().Add(-olderThan)
	n, err := u.cartRepo.DeleteStaleGuestCarts(ctx, before)
	if err != nil {
		u.log.Error("reap guest carts failed", zap.Time("before", before), zap.Error(err))
		return 0, err
	}
	u.log.Info("guest carts reaped", zap.Int64("deleted", n), zap.Time("before", before))
	return n, nil
}

// 他人のカートの明細は404
func (u *CartUsecase) ownItem(ctx context.Context, cartID, cartItemID string) error {
	if cartID == "" || cartItemID == "" {
		return errNotFound()
	}
	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound()
	}
	if err != nil {
		u.log.Error("find cart item failed", zap.String("item", cartItemID), zap.Error(err))
		return errDB()
	}
	if item.CartID != cartID {
		return errNotFound()
	}
	return nil
}

func (u *CartUsecase) deleteItem(ctx context.Context, cartItemID string) error {
	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound()
		}
		u.log.Error("delete cart item failed", zap.String("item", cartItemID), zap.Error(err))
		return errDB()
	}
	return nil
}
