package panelapi

// Endpoint paths shared by the resource clients and the stand-in API
const (
	// Auth
	RouteAuthLogin   = "/panel/auth/login"
	RouteAuthRefresh = "/panel/auth/refresh"

	// Menu categories
	RouteCategoryList    = "/menu/category/list"
	RouteCategoryAdd     = "/menu/category/add"
	RouteCategory        = "/menu/category/{id}"
	RouteCategoryReorder = "/menu/category/reorder"

	// Menu items
	RouteItemList    = "/menu/items/{categoryId}"
	RouteItemAdd     = "/menu/items/add"
	RouteItem        = "/menu/items/{id}"
	RouteItemReorder = "/menu/item/reorder/{categoryId}"

	// Gallery photos
	RoutePhotoList    = "/gallery/photo/list"
	RoutePhotoAdd     = "/gallery/photo/add"
	RoutePhoto        = "/gallery/photo/{id}"
	RoutePhotoReorder = "/gallery/photo/reorder"

	// Gallery photo labels
	RouteLabelList = "/gallery/photo/label/list"
	RouteLabelAdd  = "/gallery/photo/label/add"
	RouteLabel     = "/gallery/photo/label/{id}"

	// Operations
	RouteMetrics = "/metrics"
)
