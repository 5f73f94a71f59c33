// Package gallery manages gallery photos and the labels attached to them.
package gallery

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

// Photos returns the gallery in display order with labels resolved.
func (c *Client) Photos(ctx context.Context) ([]panelapi.Photo, error) {
	var photos []panelapi.Photo
	err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodGet, Path: panelapi.RoutePhotoList}, &photos)
	return photos, err
}

func (c *Client) AddPhoto(ctx context.Context, req panelapi.PhotoRequest) (*panelapi.Photo, error) {
	return c.writePhoto(ctx, http.MethodPost, panelapi.RoutePhotoAdd, req)
}

func (c *Client) UpdatePhoto(ctx context.Context, id string, req panelapi.PhotoRequest) (*panelapi.Photo, error) {
	return c.writePhoto(ctx, http.MethodPut, panelapi.Path(panelapi.RoutePhoto, id), req)
}

func (c *Client) writePhoto(ctx context.Context, method, path string, req panelapi.PhotoRequest) (*panelapi.Photo, error) {
	if req.LabelIDs == nil {
		req.LabelIDs = []string{}
	}
	var photo panelapi.Photo
	if err := request.Call(ctx, c.api, request.Descriptor{Method: method, Path: path, Body: req}, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodDelete, Path: panelapi.Path(panelapi.RoutePhoto, id)}, nil)
}

// ReorderPhotos persists orderedIDs as the new gallery order.
func (c *Client) ReorderPhotos(ctx context.Context, orderedIDs []string) error {
	if err := panelapi.ValidateOrder(orderedIDs); err != nil {
		return err
	}
	body := panelapi.ReorderRequest{OrderedIDs: orderedIDs}
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: panelapi.RoutePhotoReorder, Body: body}, nil)
}

func (c *Client) Labels(ctx context.Context) ([]panelapi.Label, error) {
	var labels []panelapi.Label
	err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodGet, Path: panelapi.RouteLabelList}, &labels)
	return labels, err
}

func (c *Client) AddLabel(ctx context.Context, req panelapi.LabelRequest) (*panelapi.Label, error) {
	var label panelapi.Label
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPost, Path: panelapi.RouteLabelAdd, Body: req}, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (c *Client) UpdateLabel(ctx context.Context, id string, req panelapi.LabelRequest) (*panelapi.Label, error) {
	var label panelapi.Label
	path := panelapi.Path(panelapi.RouteLabel, id)
	if err := request.Call(ctx, c.api, request.Descriptor{Method: http.MethodPut, Path: path, Body: req}, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// DeleteLabel removes a label. The API detaches it from every photo.
func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	return request.Call(ctx, c.api, request.Descriptor{Method: http.MethodDelete, Path: panelapi.Path(panelapi.RouteLabel, id)}, nil)
}
