package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/VidaFitCoaching01/coach-backoffice/internal/config"
	"github.com/VidaFitCoaching01/coach-backoffice/internal/models"
)

// Client genera links de pago de Mercado Pago para facturas nuevas.
// Es opcional: sin MP_ACCESS_TOKEN el back office funciona igual y las
// facturas simplemente no llevan payment_url.
type Client struct {
	prefs preference.Client
}

func New(cfg *appconfig.Config) (*Client, error) {
	mpCfg, err := mpconfig.New(cfg.MPAccessToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		prefs: preference.NewClient(mpCfg),
	}, nil
}

// CreateLink crea una preference con la factura como única línea y
// devuelve el init point para cobrar online.
func (c *Client) CreateLink(ctx context.Context, inv *models.Invoice) (string, error) {
	resp, err := c.prefs.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      inv.Concept,
				Quantity:   1,
				UnitPrice:  inv.Amount,
				CurrencyID: inv.Currency,
			},
		},
		ExternalReference: inv.ID.String(),
	})
	if err != nil {
		return "", err
	}

	return resp.InitPoint, nil
}
