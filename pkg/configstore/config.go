// Package configstore holds the persisted configuration aggregate, reads
// and writes the startup-config JSON snapshot, keeps an in-memory archive
// of saved snapshots, and renders the running configuration.
package configstore

import (
	"encoding/json"
	"maps"
	"slices"
)

// DefaultHostname is used when no snapshot has been saved.
const DefaultHostname = "Router"

// DynamicMapEntry is a "crypto dynamic-map" entry.
type DynamicMapEntry struct {
	Name   string `json:"name"`
	SeqNum uint32 `json:"seq_num"`
}

// CryptoMapEntry is a "crypto map" entry.
type CryptoMapEntry struct {
	Name        string `json:"name"`
	SeqNum      uint32 `json:"seq_num"`
	InterfaceID string `json:"interface_id,omitempty"`
}

// IPSecLifetime is the security-association lifetime; nil means default.
type IPSecLifetime struct {
	Seconds   *uint32 `json:"seconds"`
	Kilobytes *uint32 `json:"kilobytes"`
}

// Config is the configuration aggregate written to startup-config.json.
type Config struct {
	Hostname                string   `json:"hostname"`
	RunningConfig           string   `json:"running_config,omitempty"`
	StartupConfig           string   `json:"startup_config,omitempty"`
	CryptoIPSecProfile      string   `json:"crypto_ipsec_profile,omitempty"`
	TransformSets           []string `json:"transform_sets,omitempty"`
	TunnelMode              string   `json:"tunnel_mode,omitempty"`
	TunnelSource            string   `json:"tunnel_source,omitempty"`
	TunnelDestination       string   `json:"tunnel_destination,omitempty"`
	TunnelProtectionProfile string   `json:"tunnel_protection_profile,omitempty"`
	VirtualTemplate         string   `json:"virtual_template,omitempty"`
	EnablePassword          string   `json:"enable_password,omitempty"`
	EnableSecret            string   `json:"enable_secret,omitempty"`
	EncryptedPassword       string   `json:"encrypted_password,omitempty"`
	EncryptedSecret         string   `json:"encrypted_secret,omitempty"`
	PasswordEncryption      bool     `json:"password_encryption"`
	DomainName              string   `json:"domain_name,omitempty"`
	LastWritten             string   `json:"last_written,omitempty"`

	CryptoKeys              map[string]string          `json:"crypto_keys"`
	Certificates            map[string]string          `json:"certificates"`
	CryptoDynamicMaps       map[string]DynamicMapEntry `json:"crypto_dynamic_maps"`
	CryptoMaps              map[string]CryptoMapEntry  `json:"crypto_maps"`
	CryptoLocalAddresses    map[string]string          `json:"crypto_local_addresses"`
	CryptoTransformSets     map[string][]string        `json:"crypto_transform_sets"`
	CryptoEngineAccelerator *uint32                    `json:"crypto_engine_accelerator"`
	CryptoIPSecLifetime     IPSecLifetime              `json:"crypto_ipsec_lifetime"`
}

// Default returns the factory configuration.
func Default() *Config {
	c := &Config{Hostname: DefaultHostname}
	c.ensureMaps()
	return c
}

// ensureMaps replaces nil maps left by an older or hand-edited snapshot.
func (c *Config) ensureMaps() {
	if c.CryptoKeys == nil {
		c.CryptoKeys = make(map[string]string)
	}
	if c.Certificates == nil {
		c.Certificates = make(map[string]string)
	}
	if c.CryptoDynamicMaps == nil {
		c.CryptoDynamicMaps = make(map[string]DynamicMapEntry)
	}
	if c.CryptoMaps == nil {
		c.CryptoMaps = make(map[string]CryptoMapEntry)
	}
	if c.CryptoLocalAddresses == nil {
		c.CryptoLocalAddresses = make(map[string]string)
	}
	if c.CryptoTransformSets == nil {
		c.CryptoTransformSets = make(map[string][]string)
	}
	if c.Hostname == "" {
		c.Hostname = DefaultHostname
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.TransformSets = slices.Clone(c.TransformSets)
	out.CryptoKeys = maps.Clone(c.CryptoKeys)
	out.Certificates = maps.Clone(c.Certificates)
	out.CryptoDynamicMaps = maps.Clone(c.CryptoDynamicMaps)
	out.CryptoMaps = maps.Clone(c.CryptoMaps)
	out.CryptoLocalAddresses = maps.Clone(c.CryptoLocalAddresses)
	out.CryptoTransformSets = make(map[string][]string, len(c.CryptoTransformSets))
	for k, v := range c.CryptoTransformSets {
		out.CryptoTransformSets[k] = slices.Clone(v)
	}
	if c.CryptoEngineAccelerator != nil {
		v := *c.CryptoEngineAccelerator
		out.CryptoEngineAccelerator = &v
	}
	if c.CryptoIPSecLifetime.Seconds != nil {
		v := *c.CryptoIPSecLifetime.Seconds
		out.CryptoIPSecLifetime.Seconds = &v
	}
	if c.CryptoIPSecLifetime.Kilobytes != nil {
		v := *c.CryptoIPSecLifetime.Kilobytes
		out.CryptoIPSecLifetime.Kilobytes = &v
	}
	out.ensureMaps()
	return &out
}

// Marshal encodes c as indented JSON.
func (c *Config) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal decodes a snapshot, filling in defaults for missing fields.
func Unmarshal(data []byte) (*Config, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.ensureMaps()
	return c, nil
}
