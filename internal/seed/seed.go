// Package seed はYAMLのフィクスチャからカテゴリやデモストアを投入する。
// 何度流しても同じ結果になる（slugで突き合わせる）。
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Categories []CategoryFixture `yaml:"categories"`
	Stores     []StoreFixture    `yaml:"stores"`
}

type CategoryFixture struct {
	Name          string               `yaml:"name"`
	Slug          string               `yaml:"slug"`
	Description   string               `yaml:"description"`
	Subcategories []SubcategoryFixture `yaml:"subcategories"`
}

type SubcategoryFixture struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// デモストア。オーナーが居なければ作る
type StoreFixture struct {
	Name          string           `yaml:"name"`
	Slug          string           `yaml:"slug"`
	Description   string           `yaml:"description"`
	OwnerEmail    string           `yaml:"owner_email"`
	OwnerPassword string           `yaml:"owner_password"`
	Products      []ProductFixture `yaml:"products"`
}

type ProductFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Inventory   int      `yaml:"inventory"`
	Rating      float64  `yaml:"rating"`
	Category    string   `yaml:"category"`    // slug
	Subcategory string   `yaml:"subcategory"` // slug
	Images      []string `yaml:"images"`
}

// 投入件数
type Report struct {
	Categories    int
	Subcategories int
	Stores        int
	Products      int
}

// 組み込みのフィクスチャ
func Default() (Fixtures, error) {
	return Load(bytes.NewReader(defaultFixtures))
}

func Load(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return f, nil
}

func LoadFile(path string) (Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fixtures{}, err
	}
	defer file.Close()
	return Load(file)
}

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Seeder struct {
	categories repo.CategoryRepository
	stores     repo.StoreRepository
	products   repo.ProductRepository
	users      repo.UserRepository
	hasher     PasswordHasher
	log        *zap.Logger
}

func NewSeeder(
	categories repo.CategoryRepository,
	stores repo.StoreRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
	hasher PasswordHasher,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		categories: categories,
		stores:     stores,
		products:   products,
		users:      users,
		hasher:     hasher,
		log:        log,
	}
}

func (s *Seeder) Run(ctx context.Context, f Fixtures) (Report, error) {
	var rep Report

	categoryIDs := map[string]string{}
	subcategories := map[string]model.Subcategory{}

	for _, cf := range f.Categories {
		if cf.Slug == "" {
			return rep, fmt.Errorf("category %q: slug is required", cf.Name)
		}
		c := model.Category{Name: cf.Name, Slug: cf.Slug, Description: cf.Description}
		if err := s.categories.UpsertCategory(ctx, &c); err != nil {
			return rep, fmt.Errorf("upsert category %s: %w", cf.Slug, err)
		}
		categoryIDs[c.Slug] = c.ID
		rep.Categories++

		for _, sf := range cf.Subcategories {
			sub := model.Subcategory{Name: sf.Name, Slug: sf.Slug, Description: sf.Description, CategoryID: c.ID}
			if err := s.categories.UpsertSubcategory(ctx, &sub); err != nil {
				return rep, fmt.Errorf("upsert subcategory %s: %w", sf.Slug, err)
			}
			subcategories[sub.Slug] = sub
			rep.Subcategories++
		}
	}

	for _, sf := range f.Stores {
		created, err := s.seedStore(ctx, sf, categoryIDs, subcategories)
		if err != nil {
			return rep, err
		}
		if created >= 0 {
			rep.Stores++
			rep.Products += created
		}
	}

	s.log.Info("seed finished",
		zap.Int("categories", rep.Categories),
		zap.Int("subcategories", rep.Subcategories),
		zap.Int("stores", rep.Stores),
		zap.Int("products", rep.Products),
	)
	return rep, nil
}

// 既にあるストアは触らない（-1を返す）
func (s *Seeder) seedStore(ctx context.Context, sf StoreFixture, categoryIDs map[string]string, subcategories map[string]model.Subcategory) (int, error) {
	if _, err := s.stores.FindBySlug(ctx, sf.Slug); err == nil {
		s.log.Debug("store exists, skipped", zap.String("slug", sf.Slug))
		return -1, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return 0, fmt.Errorf("find store %s: %w", sf.Slug, err)
	}

	owner, err := s.owner(ctx, sf)
	if err != nil {
		return 0, err
	}

	store := model.Store{
		Name:         sf.Name,
		Slug:         sf.Slug,
		Description:  sf.Description,
		UserID:       owner.ID,
		Plan:         model.StorePlanFree,
		ProductLimit: model.DefaultProductLimit,
		TagLimit:     model.DefaultTagLimit,
		VariantLimit: model.DefaultVariantLimit,
		Active:       true,
	}
	if err := s.stores.Create(ctx, &store); err != nil {
		return 0, fmt.Errorf("create store %s: %w", sf.Slug, err)
	}

	for _, pf := range sf.Products {
		catID, ok := categoryIDs[pf.Category]
		if !ok {
			c, err := s.categories.FindBySlug(ctx, pf.Category)
			if err != nil {
				return 0, fmt.Errorf("product %q: category %q: %w", pf.Name, pf.Category, err)
			}
			catID = c.ID
		}
		price, err := model.ParseMoney(pf.Price)
		if err != nil {
			return 0, fmt.Errorf("product %q: invalid price %q", pf.Name, pf.Price)
		}

		p := model.Product{
			Name:        pf.Name,
			Description: pf.Description,
			Images:      pf.Images,
			CategoryID:  catID,
			Price:       price,
			Inventory:   pf.Inventory,
			Rating:      pf.Rating,
			StoreID:     store.ID,
			Active:      true,
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		if sub, ok := subcategories[pf.Subcategory]; ok {
			id := sub.ID
			p.SubcategoryID = &id
		}
		if err := s.products.Create(ctx, &p); err != nil {
			return 0, fmt.Errorf("create product %q: %w", pf.Name, err)
		}
	}
	return len(sf.Products), nil
}

func (s *Seeder) owner(ctx context.Context, sf StoreFixture) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(sf.OwnerEmail))
	if email == "" {
		return nil, fmt.Errorf("store %s: owner_email is required", sf.Slug)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, err
	}

	password := sf.OwnerPassword
	if password == "" {
		return nil, fmt.Errorf("store %s: owner_password is required for a new owner", sf.Slug)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u = &model.User{Email: email, PasswordHash: hash, Role: model.RoleUser, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create owner %s: %w", email, err)
	}
	return u, nil
}
