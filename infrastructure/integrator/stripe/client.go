package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrPayoutsDisabled = errors.New("stripe não configurado")

// TransferRequest descreve um repasse para a conta conectada do afiliado
type TransferRequest struct {
	DestinationAccount string
	Amount             float64
	Currency           string
	Description        string
	IdempotencyKey     string
}

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Payouter interface {
	Transfer(ctx context.Context, req TransferRequest) (string, error)
}

type Client struct {
	api *client.API
}

func NewClient(secretKey string, backends *stripego.Backends) *Client {
	if secretKey == "" {
		return &Client{}
	}

	return &Client{
		api: client.New(secretKey, backends),
	}
}

// Transfer cria a transferência e retorna o id dela no Stripe
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if c.api == nil {
		return "", ErrPayoutsDisabled
	}

	if req.DestinationAccount == "" {
		return "", errors.New("conta de destino não informada")
	}

	cents := ToMinorUnits(req.Amount)
	if cents <= 0 {
		return "", fmt.Errorf("valor de transferência inválido: %v", req.Amount)
	}

	params := &stripego.TransferParams{
		Amount:      stripego.Int64(cents),
		Currency:    stripego.String(strings.ToLower(req.Currency)),
		Destination: stripego.String(req.DestinationAccount),
	}
	if req.Description != "" {
		params.Description = stripego.String(req.Description)
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	transfer, err := c.api.Transfers.New(params)
	if err != nil {
		logrus.WithError(err).WithField("destination", req.DestinationAccount).Error("stripe: falha ao criar transferência")
		return "", fmt.Errorf("stripe transfer: %w", err)
	}

	return transfer.ID, nil
}

// ToMinorUnits converte o valor para centavos, arredondando a meia unidade
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
