package handlers

import (
	"campusmarket/internal/api"
	"campusmarket/internal/services"
	"campusmarket/internal/session"
)

type Deps struct {
	AuthHandler       *AuthHandler
	HomeHandler       *HomeHandler
	SearchHandler     *SearchHandler
	ProductHandler    *ProductHandler
	FavoriteHandler   *FavoriteHandler
	DashboardHandler  *DashboardHandler
	MyProductsHandler *MyProductsHandler
	ProfileHandler    *ProfileHandler
	SellHandler       *SellHandler
	ChatHandler       *ChatHandler
}

func NewDeps(backend, assistant *api.Client, sessions *session.Service) *Deps {
	listingSvc := services.NewListingService(backend, sessions)
	favSvc := services.NewFavoriteService(backend, sessions)

	return &Deps{
		AuthHandler:       &AuthHandler{Sessions: sessions},
		HomeHandler:       &HomeHandler{Listings: listingSvc, Backend: backend},
		SearchHandler:     &SearchHandler{Listings: listingSvc, Backend: backend},
		ProductHandler:    &ProductHandler{Listings: listingSvc, Backend: backend},
		FavoriteHandler:   &FavoriteHandler{Favorites: favSvc, Listings: listingSvc},
		DashboardHandler:  &DashboardHandler{Listings: listingSvc},
		MyProductsHandler: &MyProductsHandler{Listings: listingSvc, Backend: backend, Sessions: sessions},
		ProfileHandler:    &ProfileHandler{Backend: backend, Sessions: sessions},
		SellHandler:       &SellHandler{Backend: backend, Sessions: sessions},
		ChatHandler:       &ChatHandler{Assistant: assistant},
	}
}
