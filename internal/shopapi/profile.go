package shopapi

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/checkout"
)

// Profile is the slice of the user record the cart core needs: the address
// book used to ship buy-now orders.
type Profile struct {
	ID        string
	Name      string
	Addresses []checkout.Address
}

// GetProfile fetches the shopper's profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (Profile, error) {
	data, err := c.get(ctx, "get profile", "/users/"+url.PathEscape(userID))
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "address":
			err = d.Arr(func(d *jx.Decoder) error {
				a, err := decodeAddress(d)
				if err != nil {
					return err
				}
				p.Addresses = append(p.Addresses, a)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Profile{}, errors.Wrap(err, "decode profile")
	}
	return p, nil
}

func decodeAddress(d *jx.Decoder) (checkout.Address, error) {
	var a checkout.Address
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "recipient":
			a.Recipient, err = d.Str()
		case "phone":
			a.Phone, err = d.Str()
		case "street":
			a.Street, err = d.Str()
		case "city":
			a.City, err = d.Str()
		case "defaultAddress":
			a.Default, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return a, err
}
