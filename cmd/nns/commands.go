package main

import (
	"fmt"
	"io"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	domain "github.com/nspcc-dev/nns-client/nns"
	"github.com/nspcc-dev/nns-client/rpc/gateway"
	"github.com/nspcc-dev/nns-client/rpc/nns"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// cmdArgs returns exactly n command arguments.
func cmdArgs(c *cli.Context, n int) ([]string, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("expected %d argument(s): %s", n, c.Command.ArgsUsage)
	}
	return c.Args().Slice(), nil
}

// withClient initializes the client for the configured network, calls f and
// closes the client.
func withClient(c *cli.Context, accounts []*wallet.Account, f func(*nns.Client) error) error {
	cfg := appConfig(c)

	h, err := cfg.ContractHash()
	if err != nil {
		return err
	}

	cl := nns.New(nns.Prm{
		Logger:         appLogger(c),
		Contract:       h,
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
		Registerer:     appRegistry(c),
	})

	err = cl.Init(c.Context, cfg.RPC.Endpoint, accounts...)
	if err != nil {
		return err
	}
	defer cl.Close()

	return f(cl)
}

func printLines(w io.Writer, lines []string) {
	for i := range lines {
		fmt.Fprintln(w, lines[i])
	}
}

func printProperties(w io.Writer, p *domain.Properties) {
	admin := "none"
	if p.Admin != nil {
		admin = address.Uint160ToString(*p.Admin)
	}
	fmt.Fprintf(w, "name:       %s\n", p.Name)
	fmt.Fprintf(w, "expiration: %s\n", p.Expiration.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "admin:      %s\n", admin)
	if p.Image != "" {
		fmt.Fprintf(w, "image:      %s\n", p.Image)
	}
}

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:      "price",
		Usage:     "Get registration price of the domain name in GAS",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			if err = domain.CheckName(args[0]); err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				price, err := cl.GetPrice(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, price)
				return nil
			})
		},
	}
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Get the number of domain names owned by the account",
		ArgsUsage: "ADDRESS",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				b, err := cl.GetBalance(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, b)
				return nil
			})
		},
	}
}

func ownerCommand() *cli.Command {
	return &cli.Command{
		Name:      "owner",
		Usage:     "Get address of the domain name owner",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				owner, err := cl.GetOwner(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, owner)
				return nil
			})
		},
	}
}

func recordCommand() *cli.Command {
	return &cli.Command{
		Name:      "record",
		Usage:     "Get the domain name record of the given type",
		ArgsUsage: "NAME TYPE",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 2)
			if err != nil {
				return err
			}
			typ, err := domain.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				rec, err := cl.GetRecord(args[0], typ)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, rec)
				return nil
			})
		},
	}
}

func recordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "records",
		Usage:     "Get all records of the domain name",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				recs, err := cl.GetAllRecords(args[0])
				if err != nil {
					return err
				}
				printLines(c.App.Writer, recs)
				return nil
			})
		},
	}
}

func availableCommand() *cli.Command {
	return &cli.Command{
		Name:      "available",
		Usage:     "Check whether the domain name can be registered",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				ok, err := cl.IsAvailable(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, ok)
				return nil
			})
		},
	}
}

func propertiesCommand() *cli.Command {
	return &cli.Command{
		Name:      "properties",
		Usage:     "Get properties of the registered domain name",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				p, err := cl.GetProperties(args[0])
				if err != nil {
					return err
				}
				printProperties(c.App.Writer, p)
				return nil
			})
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve the domain name following CNAME records",
		ArgsUsage: "NAME TYPE",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 2)
			if err != nil {
				return err
			}
			typ, err := domain.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				rec, err := cl.Resolve(args[0], typ)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, rec)
				return nil
			})
		},
	}
}

func rootsCommand() *cli.Command {
	return &cli.Command{
		Name:  "roots",
		Usage: "List registered root names",
		Action: func(c *cli.Context) error {
			if _, err := cmdArgs(c, 0); err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				roots, err := cl.GetRoots()
				if err != nil {
					return err
				}
				printLines(c.App.Writer, roots)
				return nil
			})
		},
	}
}

func namesCommand() *cli.Command {
	return &cli.Command{
		Name:  "names",
		Usage: "List all registered domain names",
		Action: func(c *cli.Context) error {
			if _, err := cmdArgs(c, 0); err != nil {
				return err
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				names, err := cl.GetAllNames()
				if err != nil {
					return err
				}
				printLines(c.App.Writer, names)
				return nil
			})
		},
	}
}

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "List domain names owned by the account",
		ArgsUsage: "ADDRESS",
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			if _, err = address.StringToUint160(args[0]); err != nil {
				return fmt.Errorf("%w %q: %w", nns.ErrInvalidAddress, args[0], err)
			}
			return withClient(c, nil, func(cl *nns.Client) error {
				names, err := cl.GetTokensOf(args[0])
				if err != nil {
					return err
				}
				printLines(c.App.Writer, names)
				return nil
			})
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check that the deployed NNS contract has all the methods the client calls",
		Action: func(c *cli.Context) error {
			cfg := appConfig(c)
			h, err := cfg.ContractHash()
			if err != nil {
				return err
			}
			if h.Equals(util.Uint160{}) {
				h = nns.MainNetHash
			}

			rpc, err := gateway.Dial(c.Context, gateway.Prm{
				Endpoint:       cfg.RPC.Endpoint,
				DialTimeout:    cfg.RPC.DialTimeout,
				RequestTimeout: cfg.RPC.RequestTimeout,
				Logger:         appLogger(c),
				Registerer:     appRegistry(c),
			})
			if err != nil {
				return err
			}
			defer rpc.Close()

			err = nns.CheckABI(rpc, h)
			if err != nil {
				return err
			}

			appLogger(c).Debug("contract ABI checked", zap.Stringer("contract", h))
			fmt.Fprintf(c.App.Writer, "contract 0x%s is compatible\n", h.StringLE())
			return nil
		},
	}
}
