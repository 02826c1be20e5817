package config

// LocalConfig holds the per-project defaults stored in config.local.json
type LocalConfig struct {
	Network string `json:"network,omitempty"`
	Account string `json:"account,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
	ConfigKeyAccount ConfigKey = "account"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyAccount,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	normalized := NormalizeConfigKey(key)
	for _, validKey := range ValidConfigKeys() {
		if validKey == normalized {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "net" -> "network")
func NormalizeConfigKey(key string) ConfigKey {
	switch key {
	case "net", "chain":
		return ConfigKeyNetwork
	case "acc":
		return ConfigKeyAccount
	}
	return ConfigKey(key)
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyAccount:
		return c.Account
	}
	return ""
}

// Set stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyAccount:
		c.Account = value
	}
}
