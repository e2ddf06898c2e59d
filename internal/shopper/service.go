// Package shopper is the single entry point the view layer calls for cart
// and wishlist state. It hides the guest/authenticated split: the policy
// reads identity on every call and routes to the persisted guest cart or to
// the cached server-side cart, keeping both caches coherent after every
// mutation.
package shopper

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/haunguyen/shopfront/internal/cache"
	"github.com/haunguyen/shopfront/internal/checkout"
	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/domain/product"
	"github.com/haunguyen/shopfront/internal/domain/wishlist"
	"github.com/haunguyen/shopfront/internal/identity"
	"github.com/haunguyen/shopfront/internal/localcart"
	"github.com/haunguyen/shopfront/internal/shopapi"
)

// ErrAuthRequired is returned for operations that only exist for signed-in
// shoppers, such as the wishlist.
var ErrAuthRequired = errors.New("sign in required")

// CartService is the remote cart contract.
type CartService interface {
	GetCart(ctx context.Context, userID string) (cart.Cart, error)
	AddCartItem(ctx context.Context, userID string, item cart.Item) (cart.Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (cart.Cart, error)
	RemoveCartItem(ctx context.Context, userID, productID string) (cart.Cart, error)
}

// WishlistService is the remote wishlist contract.
type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) (wishlist.Snapshot, error)
	AddWishlist(ctx context.Context, userID, productID string) error
	RemoveWishlist(ctx context.Context, userID, productID string) error
}

// ProfileService supplies the address book for buy-now drafts.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (shopapi.Profile, error)
}

// Service implements the cart resolution policy and the mutation operations.
type Service struct {
	ids      identity.Provider
	local    *localcart.Store
	cartSvc  CartService
	wishSvc  WishlistService
	profiles ProfileService
	notify   Notifier

	cart *cache.Accessor[cart.Cart]
	wish *cache.Accessor[wishlist.Snapshot]
}

// NewService wires the policy over its collaborators. The remote accessors
// are gated on ids: while the shopper is a guest they never issue a network
// call.
func NewService(
	ids identity.Provider,
	local *localcart.Store,
	cartSvc CartService,
	wishSvc WishlistService,
	profiles ProfileService,
	notify Notifier,
) *Service {
	s := &Service{
		ids:      ids,
		local:    local,
		cartSvc:  cartSvc,
		wishSvc:  wishSvc,
		profiles: profiles,
		notify:   notify,
	}
	s.cart = cache.New("cart", ids.IsAuthenticated, func(ctx context.Context) (cart.Cart, error) {
		uid, _ := ids.CurrentUserID()
		return cartSvc.GetCart(ctx, uid)
	})
	s.wish = cache.New("wishlist", ids.IsAuthenticated, func(ctx context.Context) (wishlist.Snapshot, error) {
		uid, _ := ids.CurrentUserID()
		return wishSvc.GetWishlist(ctx, uid)
	})
	return s
}

// ResolveCart returns the authoritative cart for the current shopper:
// the cached server cart when signed in (fetching if stale), the persisted
// guest cart otherwise. The badge count is always TotalProduct of the
// returned cart; views never cross-read the other source.
func (s *Service) ResolveCart(ctx context.Context) (cart.Cart, error) {
	if !s.ids.IsAuthenticated() {
		return s.local.Get(), nil
	}
	c, err := s.cart.Fetch(ctx)
	if err != nil {
		if errors.Is(err, shopapi.ErrAuth) || errors.Is(err, cache.ErrDisabled) {
			// Identity went invalid mid-flight: fall back to guest mode
			// and prompt for re-authentication.
			s.notify.Notify(Notification{Level: LevelWarning, Message: "session expired, please sign in again"})
			return s.local.Get(), nil
		}
		return cart.Empty(), err
	}
	return c, nil
}

// ResolveWishlist returns the wishlist for a signed-in shopper and the
// empty snapshot for a guest: the wishlist has no guest-mode equivalent.
func (s *Service) ResolveWishlist(ctx context.Context) (wishlist.Snapshot, error) {
	if !s.ids.IsAuthenticated() {
		return wishlist.Empty(), nil
	}
	w, err := s.wish.Fetch(ctx)
	if err != nil {
		if errors.Is(err, shopapi.ErrAuth) || errors.Is(err, cache.ErrDisabled) {
			s.notify.Notify(Notification{Level: LevelWarning, Message: "session expired, please sign in again"})
			return wishlist.Empty(), nil
		}
		return wishlist.Empty(), err
	}
	return w, nil
}

// AddToCart applies an add intent to whichever store is authoritative.
// Signed in: remote create/update, then invalidate so readers refetch.
// Guest: read-modify-write on the local store, merging by productID.
func (s *Service) AddToCart(ctx context.Context, item cart.Item) (cart.Cart, error) {
	if err := item.Validate(); err != nil {
		return cart.Empty(), err
	}
	if !s.ids.IsAuthenticated() {
		return s.guestUpdate(func(items []cart.Item) []cart.Item {
			return cart.Merge(items, item)
		})
	}

	uid, _ := s.ids.CurrentUserID()
	_, err := s.cartSvc.AddCartItem(ctx, uid, item)
	// The outcome of a failed mutation is uncertain (it may have landed),
	// so the cache is invalidated either way and readers re-derive state
	// from the server.
	s.cart.Invalidate()
	if err != nil {
		s.notifyMutationError("could not add to cart", err)
		return cart.Empty(), err
	}
	return s.cart.Fetch(ctx)
}

// RemoveFromCart removes a line. Removing a productID that is not in the
// cart is a no-op that leaves aggregates unchanged.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) (cart.Cart, error) {
	if !s.ids.IsAuthenticated() {
		return s.guestUpdate(func(items []cart.Item) []cart.Item {
			return cart.Remove(items, productID)
		})
	}

	uid, _ := s.ids.CurrentUserID()
	_, err := s.cartSvc.RemoveCartItem(ctx, uid, productID)
	s.cart.Invalidate()
	if err != nil {
		var apiErr *shopapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return s.cart.Fetch(ctx)
		}
		s.notifyMutationError("could not remove from cart", err)
		return cart.Empty(), err
	}
	return s.cart.Fetch(ctx)
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1
// are rejected before any store is touched.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (cart.Cart, error) {
	if quantity < 1 {
		return cart.Empty(), &cart.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if !s.ids.IsAuthenticated() {
		var updateErr error
		c, err := s.local.Update(func(items []cart.Item) []cart.Item {
			next, err := cart.SetQuantity(items, productID, quantity)
			if err != nil {
				updateErr = err
				return items
			}
			return next
		})
		if updateErr != nil {
			return cart.Empty(), updateErr
		}
		s.warnOnPersistence(err)
		return c, nil
	}

	uid, _ := s.ids.CurrentUserID()
	_, err := s.cartSvc.UpdateCartItem(ctx, uid, productID, quantity)
	s.cart.Invalidate()
	if err != nil {
		s.notifyMutationError("could not update cart", err)
		return cart.Empty(), err
	}
	return s.cart.Fetch(ctx)
}

// ClearCart empties the guest cart. The server-side cart is cleared by the
// checkout flow, not from here.
func (s *Service) ClearCart() error {
	err := s.local.Clear()
	s.warnOnPersistence(err)
	return nil
}

// AddToWishlist adds a product for a signed-in shopper. The cached snapshot
// is toggled optimistically (the heart fills immediately); on failure the
// prior snapshot is restored and the error surfaced.
func (s *Service) AddToWishlist(ctx context.Context, productID string) error {
	return s.toggleWishlist(ctx, productID, true)
}

// RemoveFromWishlist removes a product, with the same optimistic protocol.
func (s *Service) RemoveFromWishlist(ctx context.Context, productID string) error {
	return s.toggleWishlist(ctx, productID, false)
}

func (s *Service) toggleWishlist(ctx context.Context, productID string, add bool) error {
	uid, ok := s.ids.CurrentUserID()
	if !ok {
		return ErrAuthRequired
	}

	prior, _ := s.wish.Peek()
	if add {
		s.wish.Apply(prior.With(productID))
	} else {
		s.wish.Apply(prior.Without(productID))
	}

	var err error
	if add {
		err = s.wishSvc.AddWishlist(ctx, uid, productID)
	} else {
		err = s.wishSvc.RemoveWishlist(ctx, uid, productID)
	}
	if err != nil {
		s.wish.Apply(prior)
		s.notifyMutationError("could not update wishlist", err)
		return err
	}
	// Commit: canonical membership is re-derived from the server on the
	// next read.
	s.wish.Invalidate()
	return nil
}

// BuyNow builds a single-item order draft for the external checkout flow.
// It is a pure transformation: neither the guest cart nor the remote cache
// is touched. A signed-in shopper ships to their default address (or the
// first one); a guest picks an address later in the flow.
func (s *Service) BuyNow(ctx context.Context, p product.Product, quantity int) (checkout.Draft, error) {
	uid, signedIn := s.ids.CurrentUserID()
	var book []checkout.Address
	if signedIn {
		profile, err := s.profiles.GetProfile(ctx, uid)
		if err != nil {
			s.notify.Notify(Notification{Level: LevelWarning, Message: "could not load shipping address"})
		} else {
			book = profile.Addresses
		}
	}
	return checkout.BuildDraft(p, quantity, uid, book)
}

// ResetRemote drops both remote caches back to empty. The gateway calls it
// on login and logout so no cached view crosses a session boundary. The
// guest cart is deliberately preserved across logout.
func (s *Service) ResetRemote() {
	s.cart.Reset()
	s.wish.Reset()
}

// guestUpdate runs a local-store read-modify-write and downgrades a
// persistence failure to a warning: the in-memory cart stays correct for
// this session.
func (s *Service) guestUpdate(fn func(items []cart.Item) []cart.Item) (cart.Cart, error) {
	c, err := s.local.Update(fn)
	s.warnOnPersistence(err)
	return c, nil
}

func (s *Service) warnOnPersistence(err error) {
	if err != nil {
		s.notify.Notify(Notification{Level: LevelWarning, Message: "cart could not be saved on this device"})
	}
}

func (s *Service) notifyMutationError(msg string, err error) {
	var netErr *shopapi.NetworkError
	switch {
	case errors.Is(err, shopapi.ErrAuth):
		s.notify.Notify(Notification{Level: LevelWarning, Message: "session expired, please sign in again"})
	case errors.As(err, &netErr):
		s.notify.Notify(Notification{Level: LevelError, Message: msg + ", please try again"})
	default:
		s.notify.Notify(Notification{Level: LevelError, Message: msg})
	}
}
