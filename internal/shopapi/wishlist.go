package shopapi

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/domain/wishlist"
)

// GetWishlist fetches the shopper's wishlist. The response lists products
// in server order; only membership and order are kept client-side.
func (c *Client) GetWishlist(ctx context.Context, userID string) (wishlist.Snapshot, error) {
	data, err := c.get(ctx, "get wishlist", "/users/"+url.PathEscape(userID)+"/wishlist")
	if err != nil {
		return wishlist.Empty(), err
	}
	var ids []string
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		if key != "products" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			id, err := decodeWishlistEntry(d)
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
	if err != nil {
		return wishlist.Empty(), errors.Wrap(err, "decode wishlist")
	}
	return wishlist.NewSnapshot(ids), nil
}

// decodeWishlistEntry accepts either a bare productID string or a product
// object carrying one.
func decodeWishlistEntry(d *jx.Decoder) (string, error) {
	if d.Next() == jx.String {
		return d.Str()
	}
	var id string
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == "productId" {
			s, err := d.Str()
			id = s
			return err
		}
		return d.Skip()
	})
	return id, err
}

// AddWishlist adds a product to the shopper's wishlist.
func (c *Client) AddWishlist(ctx context.Context, userID, productID string) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(productID) })
	})
	_, err := c.do(ctx, "add wishlist", "POST",
		"/users/"+url.PathEscape(userID)+"/wishlist", e.Bytes())
	return err
}

// RemoveWishlist removes a product from the shopper's wishlist.
func (c *Client) RemoveWishlist(ctx context.Context, userID, productID string) error {
	_, err := c.do(ctx, "remove wishlist", "DELETE",
		"/users/"+url.PathEscape(userID)+"/wishlist/"+url.PathEscape(productID), nil)
	return err
}
