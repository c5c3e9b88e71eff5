package usecase

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 購入フォーム
type CheckoutData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Notes      string `json:"notes"`
}

// 購入結果。失敗時は Success=false と Error
type CheckoutResult struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}

type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	mailer       Mailer
	appName      string
	log          *zap.Logger
}

// DI
func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	mailer Mailer,
	appName string,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		mailer:       mailer,
		appName:      appName,
		log:          log,
	}
}

// 注文確定。
// items はサーバー側で読んだカート明細（商品込み）。住所と注文は同じトランザクションで作り、
// カートの後片付けはcommit後に行う（失敗してもログのみ）。
func (u *CheckoutUsecase) ProcessOrder(ctx context.Context, userID *string, cartID string, data CheckoutData, items []model.CartItem) (CheckoutResult, error) {
	if err := validator.ValidateCheckout(validator.CheckoutForm(data)); err != nil {
		return CheckoutResult{Success: false, Error: "validation error"}, fromValidation(err)
	}

	lines, quantity, amount := orderLines(items)
	if len(lines) == 0 {
		return CheckoutResult{Success: false, Error: "Cart is empty"}, NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	// 先頭明細の商品のストアに紐づける
	storeID := ""
	for _, it := range items {
		if it.Product != nil {
			storeID = it.Product.StoreID
			break
		}
	}
	if storeID == "" {
		msg := "Unable to determine store for order"
		return CheckoutResult{Success: false, Error: msg}, NewHTTPError(http.StatusBadRequest, msg)
	}

	var order model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		addr := model.Address{
			UserID:     userID,
			Line1:      strings.TrimSpace(data.Address),
			City:       strings.TrimSpace(data.City),
			State:      strings.TrimSpace(data.State),
			PostalCode: strings.TrimSpace(data.PostalCode),
			Country:    strings.TrimSpace(data.Country),
		}
		if err := r.Addresses().Create(ctx, &addr); err != nil {
			return err
		}

		order = model.Order{
			UserID:    userID,
			StoreID:   storeID,
			Items:     lines,
			Quantity:  quantity,
			Amount:    amount,
			Status:    model.OrderStatusPending,
			Name:      strings.TrimSpace(data.Name),
			Email:     strings.ToLower(strings.TrimSpace(data.Email)),
			Phone:     strings.TrimSpace(data.Phone),
			AddressID: addr.ID,
			Notes:     strings.TrimSpace(data.Notes),
		}
		return r.Orders().Create(ctx, &order)
	})
	if err != nil {
		u.log.Error("create order failed", zap.String("cart", cartID), zap.Error(err))
		return CheckoutResult{Success: false, Error: "Failed to create order"}, NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	u.clearCarts(ctx, userID, cartID)
	u.sendConfirmation(ctx, order)

	return CheckoutResult{
		Success:     true,
		OrderID:     order.ID,
		OrderNumber: order.Number(),
	}, nil
}

// 明細スナップショット、合計数量、合計金額
func orderLines(items []model.CartItem) ([]model.OrderItem, int, model.Money) {
	lines := make([]model.OrderItem, 0, len(items))
	quantity := 0
	total := decimal.Zero
	for _, it := range items {
		if it.Product == nil || it.Quantity < 1 {
			continue
		}
		line := model.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Price:       it.Product.Price,
			Quantity:    it.Quantity,
		}
		lines = append(lines, line)
		quantity += it.Quantity
		total = total.Add(line.Subtotal().Decimal)
	}
	return lines, quantity, model.NewMoney(total)
}

// ユーザーの全カートと購入したカートの明細を消す
func (u *CheckoutUsecase) clearCarts(ctx context.Context, userID *string, cartID string) {
	ids := []string{}
	if cartID != "" {
		ids = append(ids, cartID)
	}
	if userID != nil && *userID != "" {
		userCarts, err := u.cartRepo.ListIDsByUserID(ctx, *userID)
		if err != nil {
			u.log.Warn("list user carts failed", zap.String("user", *userID), zap.Error(err))
		}
		for _, id := range userCarts {
			if id != cartID {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	if err := u.cartItemRepo.DeleteByCartIDs(ctx, ids); err != nil {
		u.log.Warn("clear carts after checkout failed", zap.Strings("carts", ids), zap.Error(err))
	}
}

func (u *CheckoutUsecase) sendConfirmation(ctx context.Context, o model.Order) {
	if u.mailer == nil {
		return
	}
	number := o.Number()

	var text, body strings.Builder
	fmt.Fprintf(&text, "Thank you for your order, %s.\n\nOrder %s\n\n", o.Name, number)
	fmt.Fprintf(&body, "<p>Thank you for your order, %s.</p><h2>Order %s</h2><ul>", html.EscapeString(o.Name), number)
	for _, it := range o.Items {
		fmt.Fprintf(&text, "%d x %s  %s\n", it.Quantity, it.ProductName, it.Subtotal())
		fmt.Fprintf(&body, "<li>%d &times; %s  %s</li>", it.Quantity, html.EscapeString(it.ProductName), it.Subtotal())
	}
	fmt.Fprintf(&text, "\nTotal: %s\n", o.Amount)
	fmt.Fprintf(&body, "</ul><p>Total: %s</p>", o.Amount)

	err := u.mailer.Send(ctx, Mail{
		To:      []string{o.Email},
		Subject: fmt.Sprintf("%s order confirmation %s", u.appName, number),
		HTML:    body.String(),
		Text:    text.String(),
	})
	if err != nil {
		u.log.Warn("order confirmation mail failed", zap.String("order", o.ID), zap.Error(err))
	}
}
