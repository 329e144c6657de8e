package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/opcode"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	domain "github.com/nspcc-dev/nns-client/nns"
	"github.com/nspcc-dev/nns-client/rpc/nns"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(args ...string) (string, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"nns", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestTxMode(t *testing.T) {
	require.Equal(t, nns.ModeSimulate, txMode(false, false))
	require.Equal(t, nns.ModeExecute, txMode(true, false))
	require.Equal(t, nns.ModeExecuteAndWait, txMode(false, true))
	require.Equal(t, nns.ModeExecuteAndWait, txMode(true, true))
}

func TestArgumentErrors(t *testing.T) {
	for _, args := range [][]string{
		{"price"},
		{"price", "aa.neo"},
		{"price", "aaa.com"},
		{"record", "neo.neo"},
		{"record", "neo.neo", "MX"},
		{"resolve", "neo.neo", "0"},
		{"roots", "extra"},
		{"tokens", "not-an-address"},
		{"set-record", "neo.neo", "TXT"},
		{"buy", "neo.neo"},
		{"--contract", "0xbad", "roots"},
		{"--config", "/nonexistent/config.yaml", "roots"},
		{"--log-level", "loud", "roots"},
	} {
		_, err := runApp(args...)
		require.Error(t, err, args)
	}
}

func TestOpenAccount(t *testing.T) {
	const password = "secret"

	path := filepath.Join(t.TempDir(), "wallet.json")
	w, err := wallet.NewWallet(path)
	require.NoError(t, err)

	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	require.NoError(t, acc.Encrypt(password, w.Scrypt))
	w.AddAccount(acc)

	second, err := wallet.NewAccount()
	require.NoError(t, err)
	require.NoError(t, second.Encrypt(password, w.Scrypt))
	w.AddAccount(second)
	require.NoError(t, w.Save())
	w.Close()

	_, err = openAccount("", "", password)
	require.Error(t, err)

	_, err = openAccount(filepath.Join(t.TempDir(), "missing.json"), "", password)
	require.Error(t, err)

	res, err := openAccount(path, "", password)
	require.NoError(t, err)
	require.Equal(t, acc.ScriptHash(), res.ScriptHash())
	require.NotNil(t, res.PrivateKey())

	res, err = openAccount(path, acc.Address, password)
	require.NoError(t, err)
	require.Equal(t, acc.Address, res.Address)

	res, err = openAccount(path, second.Address, password)
	require.NoError(t, err)
	require.Equal(t, second.ScriptHash(), res.ScriptHash())
	require.True(t, res.CanSign())
	require.Equal(t, second.ScriptHash(), res.PrivateKey().GetScriptHash())

	tx := transaction.New([]byte{byte(opcode.RET)}, 0)
	tx.Signers = []transaction.Signer{{Account: res.ScriptHash()}}
	require.NoError(t, res.SignTx(netmode.UnitTestNet, tx))
	require.Len(t, tx.Scripts, 1)
	require.NotEmpty(t, tx.Scripts[0].InvocationScript)

	_, err = openAccount(path, acc.Address, "wrong")
	require.Error(t, err)

	_, err = openAccount(path, "bad", password)
	require.ErrorIs(t, err, nns.ErrInvalidAddress)

	other, err := wallet.NewAccount()
	require.NoError(t, err)
	_, err = openAccount(path, other.Address, password)
	require.Error(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer

	res := &nns.Result{
		Invoke: &result.Invoke{
			State:          vmstate.Fault.String(),
			GasConsumed:    1_0000_0000,
			FaultException: "not witnessed",
		},
	}
	printResult(&out, res)
	require.Contains(t, out.String(), "FAULT")
	require.Contains(t, out.String(), "not witnessed")
	require.Contains(t, out.String(), "gas:     1\n")
	require.NotContains(t, out.String(), "tx:")

	out.Reset()
	res = &nns.Result{
		Invoke: &result.Invoke{
			State:       vmstate.Halt.String(),
			GasConsumed: 5000000,
		},
		Success:         true,
		TxHash:          util.Uint256{1},
		ValidUntilBlock: 42,
		AppLog: &state.AppExecResult{
			Execution: state.Execution{VMState: vmstate.Halt, GasConsumed: 4000000},
		},
	}
	printResult(&out, res)
	require.Contains(t, out.String(), "tx:      0x"+res.TxHash.StringLE())
	require.Contains(t, out.String(), "vub:     42")
	require.Contains(t, out.String(), "result:  HALT, 0.04 GAS")
}

func TestPrintProperties(t *testing.T) {
	var out bytes.Buffer

	admin := util.Uint160{1, 2, 3}
	printProperties(&out, &domain.Properties{
		Name:       "neo.neo",
		Expiration: time.UnixMilli(0),
		Admin:      &admin,
	})
	require.Contains(t, out.String(), "name:       neo.neo")
	require.Contains(t, out.String(), "expiration: 1970-01-01T00:00:00Z")
	require.NotContains(t, out.String(), "image")

	out.Reset()
	printProperties(&out, &domain.Properties{Name: "neo.neo", Image: "https://neo.org/nns.png"})
	require.Contains(t, out.String(), "admin:      none")
	require.Contains(t, out.String(), "image:      https://neo.org/nns.png")
}
