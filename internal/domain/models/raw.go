package models

// TransactionRaw is the wire-safe form of a Transaction. Numbers are base-10
// strings and Data is 0x-prefixed hex. Optional fields are omitted when the
// transaction doesn't carry them.
type TransactionRaw struct {
	Family       string  `json:"family"`
	Mode         string  `json:"mode"`
	Recipient    string  `json:"recipient"`
	Amount       string  `json:"amount"`
	UseAllAmount bool    `json:"useAllAmount,omitempty"`
	SubAccountID *string `json:"subAccountId,omitempty"`

	GasLimit             *string `json:"gasLimit,omitempty"`
	CustomGasLimit       *string `json:"customGasLimit,omitempty"`
	GasPrice             *string `json:"gasPrice,omitempty"`
	MaxFeePerGas         *string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *string `json:"maxPriorityFeePerGas,omitempty"`
	AdditionalFees       *string `json:"additionalFees,omitempty"`

	Nonce        string  `json:"nonce"`
	ChainID      string  `json:"chainId"`
	FeesStrategy *string `json:"feesStrategy,omitempty"`
	Type         *string `json:"type,omitempty"`
	Data         *string `json:"data,omitempty"`
}
