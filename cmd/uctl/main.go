// uctl is a command line client for the unified exchange API. It reads
// credentials from the standard configuration sources and prints canonical
// entities as JSON.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tradekit-io/unified/config"
	"github.com/tradekit-io/unified/exchanges"
	"github.com/tradekit-io/unified/exchanges/asset"
	"github.com/tradekit-io/unified/exchanges/bitget"
	"github.com/tradekit-io/unified/exchanges/mexc"
)

func main() {
	app := &cli.App{
		Name:  "uctl",
		Usage: "query exchanges through the unified client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exchange",
				Aliases: []string{"e"},
				Usage:   "exchange to target (bitget, mexc)",
				Value:   "bitget",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "server-time",
				Usage:  "fetch the venue clock",
				Action: serverTime,
			},
			{
				Name:      "ticker",
				Usage:     "fetch a ticker snapshot",
				ArgsUsage: "<symbol>",
				Action:    tickerCmd,
			},
			{
				Name:   "markets",
				Usage:  "list tradable markets",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "market type (spot, swap)",
						Value: "spot",
					},
				},
				Action: markets,
			},
			{
				Name:      "trades",
				Usage:     "fetch recent public trades",
				ArgsUsage: "<symbol>",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "limit",
						Usage: "maximum trades to return",
						Value: 50,
					},
				},
				Action: trades,
			},
			{
				Name:      "funding-rate",
				Usage:     "fetch the current funding rate of a perpetual",
				ArgsUsage: "<symbol>",
				Action:    fundingRate,
			},
			{
				Name:  "balance",
				Usage: "fetch account balances",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "market type (spot, swap)",
						Value: "spot",
					},
				},
				Action: balance,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient(c *cli.Context) (exchanges.UnifiedExchange, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(c.String("exchange"))
	settings, err := cfg.Exchange(name)
	if err != nil {
		// Public endpoints work without configured credentials
		if !errors.Is(err, config.ErrExchangeNotConfigured) {
			return nil, err
		}
		logger.Debug("no credentials configured", zap.String("exchange", name))
	}
	clientCfg := exchanges.Config{
		Credentials: exchanges.Credentials{
			Key:        settings.Key,
			Secret:     settings.Secret,
			Passphrase: settings.Passphrase,
		},
		Sandbox: settings.Sandbox,
		Verbose: settings.Verbose,
		Logger:  logger,
	}
	switch name {
	case "bitget":
		return bitget.New(clientCfg)
	case "mexc":
		return mexc.New(clientCfg)
	}
	return nil, fmt.Errorf("unknown exchange %q", name)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func requireSymbol(c *cli.Context) (string, error) {
	symbol := c.Args().First()
	if symbol == "" {
		return "", fmt.Errorf("symbol argument is required, e.g. BTC/USDT:USDT")
	}
	return symbol, nil
}

func serverTime(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	t, err := client.SyncTime(c.Context)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"serverTime": t})
}

func tickerCmd(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	symbol, err := requireSymbol(c)
	if err != nil {
		return err
	}
	p, err := client.FetchTicker(c.Context, symbol)
	if err != nil {
		return err
	}
	return printJSON(p)
}

func markets(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	a, err := asset.New(c.String("type"))
	if err != nil {
		return err
	}
	list, err := client.FetchMarkets(c.Context, a)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func trades(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	symbol, err := requireSymbol(c)
	if err != nil {
		return err
	}
	list, err := client.FetchTrades(c.Context, symbol, c.Int64("limit"))
	if err != nil {
		return err
	}
	return printJSON(list)
}

func fundingRate(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	symbol, err := requireSymbol(c)
	if err != nil {
		return err
	}
	fr, err := client.FetchFundingRate(c.Context, symbol)
	if err != nil {
		return err
	}
	return printJSON(fr)
}

func balance(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	a, err := asset.New(c.String("type"))
	if err != nil {
		return err
	}
	h, err := client.FetchBalance(c.Context, a)
	if err != nil {
		return err
	}
	return printJSON(h)
}
