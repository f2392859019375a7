package handlers

import (
	"schuhaus/internal/config"
	"schuhaus/internal/repos"
	"schuhaus/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CartHandler     *CartHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, sender services.Sender) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	commentRepo := repos.NewCommentRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, commentRepo)
	cartSvc := services.NewCartService(cartRepo)
	emailSvc := &services.EmailService{
		Sender:       sender,
		TemplatesDir: cfg.TemplatesDir,
		BaseURL:      cfg.BaseURL,
	}

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: auth, Cart: cartSvc, Email: emailSvc},
		CartHandler:     &CartHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		AdminHandler:    &AdminHandler{Users: auth.Users, Comments: commentRepo},
	}
}
