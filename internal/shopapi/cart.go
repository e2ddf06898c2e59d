package shopapi

import (
	"context"
	"net/url"

	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/domain/cart"
)

// GetCart fetches the shopper's server-side cart.
func (c *Client) GetCart(ctx context.Context, userID string) (cart.Cart, error) {
	data, err := c.get(ctx, "get cart", "/users/"+url.PathEscape(userID)+"/cart")
	if err != nil {
		return cart.Empty(), err
	}
	return cart.Decode(jx.DecodeBytes(data))
}

// AddCartItem creates or increments a line in the server-side cart and
// returns the updated cart.
func (c *Client) AddCartItem(ctx context.Context, userID string, item cart.Item) (cart.Cart, error) {
	var e jx.Encoder
	cart.EncodeItem(&e, item)
	data, err := c.do(ctx, "add cart item", "POST",
		"/users/"+url.PathEscape(userID)+"/cart/items", e.Bytes())
	if err != nil {
		return cart.Empty(), err
	}
	return cart.Decode(jx.DecodeBytes(data))
}

// UpdateCartItem sets the quantity of an existing line.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (cart.Cart, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("quantity", func(e *jx.Encoder) { e.Int(quantity) })
	})
	data, err := c.do(ctx, "update cart item", "PATCH",
		"/users/"+url.PathEscape(userID)+"/cart/items/"+url.PathEscape(productID), e.Bytes())
	if err != nil {
		return cart.Empty(), err
	}
	return cart.Decode(jx.DecodeBytes(data))
}

// RemoveCartItem deletes a line from the server-side cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID string) (cart.Cart, error) {
	data, err := c.do(ctx, "remove cart item", "DELETE",
		"/users/"+url.PathEscape(userID)+"/cart/items/"+url.PathEscape(productID), nil)
	if err != nil {
		return cart.Empty(), err
	}
	return cart.Decode(jx.DecodeBytes(data))
}
