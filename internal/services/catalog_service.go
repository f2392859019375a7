package services

import (
	"schuhaus/internal/domain"
	"schuhaus/internal/repos"
)

type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Comments *repos.CommentRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, comments *repos.CommentRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Comments: comments}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListProductsByCategory(catID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListByCategory(catID, pageSize, offset)
}

func (s *CatalogService) Search(q, category, brand string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, category, brand, pageSize, offset)
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

// ProductDetail bundles everything the product page renders.
type ProductDetail struct {
	Product       domain.Product
	Images        []domain.ProductImage
	Videos        []domain.ProductVideo
	Colors        []domain.ProductColor
	Sizes         []domain.ProductSize
	Comments      []domain.ProductComment
	SubCategories []domain.SubCategory
}

func (s *CatalogService) GetProductDetail(id int64) (*ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return nil, err
	}
	d := &ProductDetail{Product: p}
	if d.Images, err = s.Prods.Images(id); err != nil {
		return nil, err
	}
	if d.Videos, err = s.Prods.Videos(id); err != nil {
		return nil, err
	}
	if d.Colors, err = s.Prods.Colors(id); err != nil {
		return nil, err
	}
	if d.Sizes, err = s.Prods.Sizes(id); err != nil {
		return nil, err
	}
	if d.Comments, err = s.Comments.ListByProduct(id); err != nil {
		return nil, err
	}
	if d.SubCategories, err = s.Cats.SubCategories(p.CategoryID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *CatalogService) AddComment(c *domain.ProductComment) error {
	if _, err := s.Prods.Get(c.ProductID); err != nil {
		return err
	}
	return s.Comments.Insert(c)
}
