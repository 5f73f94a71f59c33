package server

import (
	"net/http"

	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/jrsteele09/restaurant-panel/panelapi"
)

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	protected := append(s.APIMiddleware(), s.RequireAuth(), s.RequireCSRF())

	// Auth
	s.RegisterRouteFunc("POST "+panelapi.RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteFunc("POST "+panelapi.RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), api...))

	// Menu categories
	s.RegisterRouteFunc("GET "+panelapi.RouteCategoryList, ChainMiddleware(s.ListCategoriesHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RouteCategoryAdd, ChainMiddleware(s.AddCategoryHandler(), protected...))
	s.RegisterRouteFunc("PUT "+panelapi.RouteCategory, ChainMiddleware(s.UpdateCategoryHandler(), protected...))
	s.RegisterRouteFunc("DELETE "+panelapi.RouteCategory, ChainMiddleware(s.DeleteCategoryHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RouteCategoryReorder, ChainMiddleware(s.ReorderCategoriesHandler(), protected...))

	// Menu items
	s.RegisterRouteFunc("GET "+panelapi.RouteItemList, ChainMiddleware(s.ListItemsHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RouteItemAdd, ChainMiddleware(s.AddItemHandler(), protected...))
	s.RegisterRouteFunc("PUT "+panelapi.RouteItem, ChainMiddleware(s.UpdateItemHandler(), protected...))
	s.RegisterRouteFunc("DELETE "+panelapi.RouteItem, ChainMiddleware(s.DeleteItemHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RouteItemReorder, ChainMiddleware(s.ReorderItemsHandler(), protected...))

	// Gallery photos
	s.RegisterRouteFunc("GET "+panelapi.RoutePhotoList, ChainMiddleware(s.ListPhotosHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RoutePhotoAdd, ChainMiddleware(s.AddPhotoHandler(), protected...))
	s.RegisterRouteFunc("PUT "+panelapi.RoutePhoto, ChainMiddleware(s.UpdatePhotoHandler(), protected...))
	s.RegisterRouteFunc("DELETE "+panelapi.RoutePhoto, ChainMiddleware(s.DeletePhotoHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RoutePhotoReorder, ChainMiddleware(s.ReorderPhotosHandler(), protected...))

	// Gallery photo labels
	s.RegisterRouteFunc("GET "+panelapi.RouteLabelList, ChainMiddleware(s.ListLabelsHandler(), protected...))
	s.RegisterRouteFunc("POST "+panelapi.RouteLabelAdd, ChainMiddleware(s.AddLabelHandler(), protected...))
	s.RegisterRouteFunc("PUT "+panelapi.RouteLabel, ChainMiddleware(s.UpdateLabelHandler(), protected...))
	s.RegisterRouteFunc("DELETE "+panelapi.RouteLabel, ChainMiddleware(s.DeleteLabelHandler(), protected...))

	// Preflight for every route
	s.RegisterRouteFunc("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.CorsMiddleware))

	// Operations
	s.RegisterRouteHandler("GET "+panelapi.RouteMetrics, metrics.Handler(s.registry))
}
