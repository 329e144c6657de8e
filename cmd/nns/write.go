package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	domain "github.com/nspcc-dev/nns-client/nns"
	"github.com/nspcc-dev/nns-client/rpc/nns"
	"github.com/urfave/cli/v2"
)

// Flags of every state-changing command.
func writeFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "wallet",
			Aliases: []string{"w"},
			Usage:   "Path to the NEP-6 wallet, overrides configuration",
		},
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "Address of the wallet account to sign with, overrides configuration",
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Password of the wallet account",
			EnvVars: []string{"NNS_WALLET_PASSWORD"},
		},
		&cli.BoolFlag{
			Name:  "execute",
			Usage: "Send the transaction if test invocation succeeds",
		},
		&cli.BoolFlag{
			Name:  "await",
			Usage: "Send the transaction and wait for it to be accepted, implies --execute",
		},
	}, extra...)
}

// txMode converts command flags to the client mode.
func txMode(execute, await bool) nns.Mode {
	switch {
	case await:
		return nns.ModeExecuteAndWait
	case execute:
		return nns.ModeExecute
	default:
		return nns.ModeSimulate
	}
}

// openAccount reads the wallet and decrypts the account with the given
// address or the default wallet account if addr is empty. Keys of the other
// wallet accounts are released.
func openAccount(path, addr, password string) (*wallet.Account, error) {
	if path == "" {
		return nil, errors.New("missing wallet path")
	}

	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	acc, err := decryptAccount(w, addr, password)
	if err != nil {
		w.Close()
		return nil, err
	}

	for _, other := range w.Accounts {
		if other != acc {
			other.Close()
		}
	}

	return acc, nil
}

func decryptAccount(w *wallet.Wallet, addr, password string) (*wallet.Account, error) {
	var acc *wallet.Account
	if addr == "" {
		acc = w.GetAccount(w.GetChangeAddress())
	} else {
		h, err := address.StringToUint160(addr)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", nns.ErrInvalidAddress, addr, err)
		}
		acc = w.GetAccount(h)
	}
	if acc == nil {
		return nil, fmt.Errorf("no account %q in wallet %s", addr, w.Path())
	}

	err := acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}
	return acc, nil
}

type invokeFunc func(ctx context.Context, cl *nns.Client, acc *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error)

// withSigner opens the signing account and calls f with it.
func withSigner(c *cli.Context, f invokeFunc) error {
	cfg := appConfig(c)

	path := cfg.Wallet.Path
	if c.IsSet("wallet") {
		path = c.String("wallet")
	}
	addr := cfg.Wallet.Address
	if c.IsSet("address") {
		addr = c.String("address")
	}

	acc, err := openAccount(path, addr, c.String("password"))
	if err != nil {
		return err
	}
	defer acc.Close()

	mode := txMode(c.Bool("execute"), c.Bool("await"))
	signer := transaction.Signer{
		Account: acc.ScriptHash(),
		Scopes:  transaction.CalledByEntry,
	}

	return withClient(c, []*wallet.Account{acc}, func(cl *nns.Client) error {
		ctx := c.Context
		if mode == nns.ModeExecuteAndWait {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, awaitTimeout)
			defer cancel()
		}

		res, err := f(ctx, cl, acc, signer, mode)
		if err != nil {
			return err
		}

		printResult(c.App.Writer, res)

		if !res.Success {
			return errors.New("test invocation failed")
		}
		return nil
	})
}

func printResult(w io.Writer, res *nns.Result) {
	fmt.Fprintf(w, "state:   %s\n", res.Invoke.State)
	fmt.Fprintf(w, "gas:     %s\n", fixedn.Fixed8(res.Invoke.GasConsumed))
	if res.Invoke.FaultException != "" {
		fmt.Fprintf(w, "error:   %s\n", res.Invoke.FaultException)
	}
	fmt.Fprintf(w, "events:  %d\n", len(res.Invoke.Notifications))
	if res.Sent() {
		fmt.Fprintf(w, "tx:      0x%s\n", res.TxHash.StringLE())
		fmt.Fprintf(w, "vub:     %d\n", res.ValidUntilBlock)
	}
	if res.AppLog != nil {
		fmt.Fprintf(w, "result:  %s, %s GAS\n", res.AppLog.VMState, fixedn.Fixed8(res.AppLog.GasConsumed))
	}
}

func buyCommand() *cli.Command {
	return &cli.Command{
		Name:      "buy",
		Usage:     "Register the domain name",
		ArgsUsage: "NAME",
		Flags: writeFlags(&cli.StringFlag{
			Name:  "owner",
			Usage: "Address of the new owner, signing account by default",
		}),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			if err = domain.CheckName(args[0]); err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, acc *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				owner := acc.ScriptHash()
				if c.IsSet("owner") {
					owner, err = address.StringToUint160(c.String("owner"))
					if err != nil {
						return nil, fmt.Errorf("%w %q: %w", nns.ErrInvalidAddress, c.String("owner"), err)
					}
				}
				return cl.Buy(ctx, args[0], owner, signer, mode)
			})
		},
	}
}

func renewCommand() *cli.Command {
	return &cli.Command{
		Name:      "renew",
		Usage:     "Prolong the domain name registration",
		ArgsUsage: "NAME",
		Flags: writeFlags(&cli.IntFlag{
			Name:  "years",
			Value: 1,
			Usage: "Number of years to prolong the registration for",
		}),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 1)
			if err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, _ *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				return cl.Renew(ctx, args[0], c.Int("years"), signer, mode)
			})
		},
	}
}

func setAdminCommand() *cli.Command {
	return &cli.Command{
		Name:      "set-admin",
		Usage:     "Set the domain name admin",
		ArgsUsage: "NAME ADDRESS",
		Flags:     writeFlags(),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 2)
			if err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, _ *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				return cl.SetAdmin(ctx, args[0], args[1], signer, mode)
			})
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Transfer the domain name to another account",
		ArgsUsage: "NAME ADDRESS",
		Flags: writeFlags(&cli.StringFlag{
			Name:  "data",
			Usage: "Data passed to the receiver",
		}),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 2)
			if err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, _ *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				return cl.Transfer(ctx, args[1], args[0], c.String("data"), signer, mode)
			})
		},
	}
}

func setRecordCommand() *cli.Command {
	return &cli.Command{
		Name:      "set-record",
		Usage:     "Set the domain name record",
		ArgsUsage: "NAME TYPE DATA",
		Flags:     writeFlags(),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 3)
			if err != nil {
				return err
			}
			typ, err := domain.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, _ *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				return cl.SetRecord(ctx, args[0], typ, args[2], signer, mode)
			})
		},
	}
}

func deleteRecordCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete-record",
		Usage:     "Delete the domain name record",
		ArgsUsage: "NAME TYPE",
		Flags:     writeFlags(),
		Action: func(c *cli.Context) error {
			args, err := cmdArgs(c, 2)
			if err != nil {
				return err
			}
			typ, err := domain.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			return withSigner(c, func(ctx context.Context, cl *nns.Client, _ *wallet.Account, signer transaction.Signer, mode nns.Mode) (*nns.Result, error) {
				return cl.DeleteRecord(ctx, args[0], typ, signer, mode)
			})
		},
	}
}
