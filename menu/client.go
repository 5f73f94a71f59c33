// Package menu manages menu categories and their items through the panel API.
package menu

import (
	"context"
	"net/http"

	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/request"
)

type Client struct {
	api request.Executor
}

func NewClient(api request.Executor) *Client {
	return &Client{api: api}
}

// Categories returns the categories in display order.
func (c *Client) Categories(ctx context.Context) ([]panelapi.Category, error) {
	var categories []panelapi.Category
	err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodGet, Path: panelapi.RouteCategoryList}, &categories)
	return categories, err
}

func (c *Client) AddCategory(ctx context.Context, req panelapi.CategoryRequest) (*panelapi.Category, error) {
	var category panelapi.Category
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: panelapi.RouteCategoryAdd, Body: req}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req panelapi.CategoryRequest) (*panelapi.Category, error) {
	var category panelapi.Category
	path := panelapi.Path(panelapi.RouteCategory, id)
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPut, Path: path, Body: req}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category. The API removes its items with it.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	path := panelapi.Path(panelapi.RouteCategory, id)
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodDelete, Path: path}, nil)
}

// ReorderCategories persists orderedIDs as the new category order.
func (c *Client) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	if err := panelapi.ValidateOrder(orderedIDs); err != nil {
		return err
	}
	body := panelapi.ReorderRequest{OrderedIDs: orderedIDs}
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: panelapi.RouteCategoryReorder, Body: body}, nil)
}

// Items returns the items of one category in display order.
func (c *Client) Items(ctx context.Context, categoryID string) ([]panelapi.MenuItem, error) {
	var items []panelapi.MenuItem
	path := panelapi.Path(panelapi.RouteItemList, categoryID)
	err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodGet, Path: path}, &items)
	return items, err
}

func (c *Client) AddItem(ctx context.Context, req panelapi.MenuItemRequest) (*panelapi.MenuItem, error) {
	var item panelapi.MenuItem
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: panelapi.RouteItemAdd, Body: req}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, req panelapi.MenuItemRequest) (*panelapi.MenuItem, error) {
	var item panelapi.MenuItem
	req.CategoryID = ""
	path := panelapi.Path(panelapi.RouteItem, id)
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPut, Path: path, Body: req}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	path := panelapi.Path(panelapi.RouteItem, id)
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodDelete, Path: path}, nil)
}

// ReorderItems persists orderedIDs as the new item order within categoryID.
func (c *Client) ReorderItems(ctx context.Context, categoryID string, orderedIDs []string) error {
	if err := panelapi.ValidateOrder(orderedIDs); err != nil {
		return err
	}
	body := panelapi.ReorderRequest{OrderedIDs: orderedIDs}
	path := panelapi.Path(panelapi.RouteItemReorder, categoryID)
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: path, Body: body}, nil)
}
