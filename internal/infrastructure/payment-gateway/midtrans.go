package paymentgateway

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"

	"github.com/tradewell/storefront/config"
)

func CreateMidtransClient(config *config.Config) *coreapi.Client {
	client := coreapi.Client{}
	client.New(config.MidtransConfig.ServerKey, midtrans.Sandbox)

	return &client
}
