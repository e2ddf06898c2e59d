// Command cart-gateway serves the cart/wishlist state core for one shopper
// session: the persisted guest cart, the cached server-side cart and
// wishlist, and the policy that picks between them.
package main

import (
	"context"

	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/haunguyen/shopfront/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		return appkg.Run(ctx, lg, m, cfg)
	})
}
