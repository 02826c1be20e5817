package models

// Unit describes one denomination of an asset. Magnitude is the number of
// decimal places between the minor unit and this unit.
type Unit struct {
	Name      string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Code      string `json:"code" toml:"code" yaml:"code" validate:"required"`
	Magnitude int32  `json:"magnitude" toml:"magnitude" yaml:"magnitude" validate:"gte=0,lte=36"`
}

// Token is an ERC-20 descriptor
type Token struct {
	ContractAddress string `json:"contractAddress"`
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	Units           []Unit `json:"units"`
}

// Unit returns the token's main display unit
func (t Token) Unit() Unit {
	if len(t.Units) == 0 {
		return Unit{Name: t.Name, Code: t.Ticker}
	}
	return t.Units[0]
}
