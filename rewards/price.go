// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package rewards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// DefaultPriceEndpoint is the GeckoTerminal public API root.
const DefaultPriceEndpoint = "https://api.geckoterminal.com/api/v2"

// PriceOracle quotes the reward token in USD.
type PriceOracle interface {
	TokenPriceUSD(ctx context.Context, token common.Address) (decimal.Decimal, error)
}

// GeckoTerminal reads spot prices from the GeckoTerminal simple price API.
type GeckoTerminal struct {
	endpoint string
	network  string
	client   *http.Client
}

// NewGeckoTerminal creates an oracle for network (e.g. "bsc"). An empty
// endpoint selects DefaultPriceEndpoint.
func NewGeckoTerminal(endpoint, network string, client *http.Client) *GeckoTerminal {
	if endpoint == "" {
		endpoint = DefaultPriceEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GeckoTerminal{endpoint: strings.TrimRight(endpoint, "/"), network: network, client: client}
}

type simpleTokenPrice struct {
	Data struct {
		Attributes struct {
			TokenPrices map[string]string `json:"token_prices"`
		} `json:"attributes"`
	} `json:"data"`
}

func (g *GeckoTerminal) TokenPriceUSD(ctx context.Context, token common.Address) (decimal.Decimal, error) {
	key := strings.ToLower(token.Hex())
	url := fmt.Sprintf("%s/simple/networks/%s/token_price/%s", g.endpoint, g.network, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("price request failed: status %d", resp.StatusCode)
	}

	var body simpleTokenPrice
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("invalid price response: %w", err)
	}
	raw, ok := body.Data.Attributes.TokenPrices[key]
	if !ok || raw == "" {
		return decimal.Zero, ErrPriceNotFound
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return price, nil
}
