// Package erc20 encodes and decodes ERC-20 transfer calldata.
package erc20

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txprep/internal/domain"
)

const erc20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

// TransferGasFallback is the gas limit assumed for a transfer before the
// node has estimated it.
const TransferGasFallback = 65_000

var parsed abi.ABI

func init() {
	var err error
	parsed, err = abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ERC-20 ABI: %v", err))
	}
}

// Transfer is a decoded transfer(address,uint256) call
type Transfer struct {
	To     common.Address
	Amount *big.Int
}

// TransferData packs a transfer(to, amount) call
func TransferData(to string, amount *big.Int) ([]byte, error) {
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, to)
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, fmt.Errorf("transfer amount must be non-negative")
	}
	return parsed.Pack("transfer", common.HexToAddress(to), amount)
}

// DecodeTransfer unpacks calldata produced by TransferData
func DecodeTransfer(data []byte) (*Transfer, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short: %d bytes", len(data))
	}

	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("unknown selector: %w", err)
	}
	if method.Name != "transfer" {
		return nil, fmt.Errorf("not a transfer call: %s", method.Name)
	}

	inputs, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to unpack transfer: %w", err)
	}

	to, ok := inputs[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected recipient type %T", inputs[0])
	}
	amount, ok := inputs[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected amount type %T", inputs[1])
	}
	return &Transfer{To: to, Amount: amount}, nil
}
