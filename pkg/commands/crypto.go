package commands

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

const defaultKeySize = 2048

var cryptoSubcommands = []string{
	"ipsec", "key", "certificate", "dynamic-map", "engine accelerator",
	"ipsec security-association lifetime", "ipsec transform-set", "map",
	"map local-address",
}

func cryptoCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "crypto", Desc: "Crypto configuration commands", Subcommands: cryptoSubcommands, Exec: crypto},
	}
}

// keyName is the label of the device key pair: <hostname>.<domain>.
func keyName(cfg *configstore.Config) string {
	domain := cfg.DomainName
	if domain == "" {
		domain = "default_domain"
	}
	return cfg.Hostname + "." + domain
}

func pem(label, body string) string {
	return fmt.Sprintf("-----BEGIN %s-----\n%s\n-----END %s-----", label, body, label)
}

func crypto(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("Crypto commands are only available in Config mode.")
	}
	args = words(args)
	if len(args) == 0 {
		return errors.New("Subcommand required. Available subcommands: 'ipsec profile', 'key'.")
	}
	switch args[0] {
	case "ipsec":
		return cryptoIPSec(args[1:], s)
	case "key":
		return cryptoKey(args[1:], s)
	case "certificate":
		return cryptoCertificate(args[1:], s)
	case "dynamic-map":
		if len(args) < 3 {
			return errors.New("Usage: crypto dynamic-map <dynamic-map-name> <dynamic-seq-num>")
		}
		seq, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return errors.New("Invalid sequence number")
		}
		s.Config.CryptoDynamicMaps[args[1]] = configstore.DynamicMapEntry{Name: args[1], SeqNum: uint32(seq)}
		s.Printf("Created dynamic map entry '%s' with sequence number %d\n", args[1], seq)
	case "engine":
		if len(args) < 2 || args[1] != "accelerator" {
			return errors.New("Usage: crypto engine accelerator [slot]")
		}
		s.Config.CryptoEngineAccelerator = nil
		label := "default"
		if len(args) > 2 {
			slot, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return errors.New("Invalid slot number")
			}
			v := uint32(slot)
			s.Config.CryptoEngineAccelerator = &v
			label = strconv.FormatUint(slot, 10)
		}
		s.Printf("IPSec accelerator %s configured\n", label)
	case "map":
		if len(args) < 3 {
			return errors.New("Usage: crypto map <map-name> <seq-num> ipsec-manual")
		}
		name := args[1]
		seq, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return errors.New("Invalid sequence number")
		}
		if len(args) > 3 && args[3] == "local-address" {
			if len(args) < 5 {
				return errors.New("Usage: crypto map <map-name> <seq-num> local-address <interface-id>")
			}
			s.Config.CryptoLocalAddresses[name] = args[4]
			s.Printf("Set local address interface '%s' for crypto map '%s'\n", args[4], name)
			return nil
		}
		s.Config.CryptoMaps[name] = configstore.CryptoMapEntry{Name: name, SeqNum: uint32(seq)}
		s.Printf("Created crypto map entry '%s' with sequence number %d\n", name, seq)
	default:
		return errors.New("Invalid crypto subcommand. Available subcommands: 'ipsec profile', 'key'.")
	}
	return nil
}

func cryptoIPSec(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Invalid ipsec subcommand. Use 'crypto ipsec profile <profile-name>' or 'crypto ipsec security-association lifetime <s/kb>'.")
	}
	switch args[0] {
	case "profile":
		if len(args) != 2 {
			return errors.New("Invalid arguments. Use 'crypto ipsec profile <profile-name>'.")
		}
		s.Config.CryptoIPSecProfile = args[1]
		s.Printf("Crypto IPsec profile '%s' defined.\n", args[1])
	case "security-association":
		if len(args) < 4 || args[1] != "lifetime" {
			return errors.New("Usage: crypto ipsec security-association lifetime {seconds <seconds> | kilobytes <kilobytes>}")
		}
		v, err := strconv.ParseUint(args[3], 10, 32)
		n := uint32(v)
		switch args[2] {
		case "seconds":
			if err != nil {
				return errors.New("Invalid seconds value")
			}
			s.Config.CryptoIPSecLifetime.Seconds = &n
		case "kilobytes":
			if err != nil {
				return errors.New("Invalid kilobytes value")
			}
			s.Config.CryptoIPSecLifetime.Kilobytes = &n
		default:
			return errors.New("Invalid lifetime parameter. Use 'seconds' or 'kilobytes'.")
		}
		s.Printf("IPSec security association lifetime set to %d %s\n", n, args[2])
	case "transform-set":
		if len(args) < 3 {
			return errors.New("Usage: crypto ipsec transform-set <transform-set-name> <transform1> [transform2] [transform3]")
		}
		transforms := append([]string(nil), args[2:]...)
		s.Config.CryptoTransformSets[args[1]] = transforms
		s.Printf("Created transform set '%s' with transforms: %s\n", args[1], strings.Join(transforms, ", "))
	default:
		return errors.New("Invalid ipsec subcommand. Use 'crypto ipsec profile <profile-name>' or 'crypto ipsec security-association lifetime <s/kb>'.")
	}
	return nil
}

func keyType(args []string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	t := strings.ToLower(args[1])
	return t, t == "rsa" || t == "dsa"
}

func cryptoKey(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Subcommand required. Use 'generate' to create keys, or 'zeroize' to delete keys.")
	}
	switch args[0] {
	case "generate":
		kt, ok := keyType(args)
		if !ok {
			return errors.New("Invalid generate command. Use 'crypto key generate <rsa|dsa>'.")
		}
		answer, err := ask(s, "Enter key size (default is 2048 bits): ")
		if err != nil {
			return err
		}
		size := defaultKeySize
		if answer != "" {
			size, err = strconv.Atoi(answer)
			if err != nil || size < 360 || size > 4096 {
				return errors.New("Invalid key size. Enter a number between 360 and 4096.")
			}
		}
		name := keyName(s.Config)
		s.Printf("The name for the keys will be: %s\n", name)
		s.Printf("Generating %d-bit %s keys, keys will be non-exportable...\n", size, strings.ToUpper(kt))
		label := strings.ToUpper(kt) + " PRIVATE KEY"
		s.Config.CryptoKeys[name] = pem(label, fmt.Sprintf("Generated %s key for %s with size %d", kt, name, size))
		s.Printf("[OK] %s keys generated successfully.\n", strings.ToUpper(kt))
	case "zeroize":
		kt, ok := keyType(args)
		if !ok {
			return errors.New("Invalid zeroize command. Use 'crypto key zeroize <rsa|dsa>'.")
		}
		name := keyName(s.Config)
		s.Printf("Securely deleting key: %s\n", name)
		delete(s.Config.CryptoKeys, name)
		s.Printf("[OK] %s keys deleted successfully.\n", strings.ToUpper(kt))
	case "import":
		kt, ok := keyType(args)
		if !ok {
			return errors.New("Invalid import command. Use 'crypto key import <rsa|dsa>'.")
		}
		s.Println("Enter the key data (paste the key content, end with a blank line):")
		data, err := readBlock(s)
		if err != nil {
			return fmt.Errorf("Failed to import key: %w", err)
		}
		if data == "" {
			return errors.New("Failed to import key: no key data")
		}
		if !strings.HasPrefix(data, "-----BEGIN") {
			data = pem(strings.ToUpper(kt)+" PRIVATE KEY", data)
		}
		s.Config.CryptoKeys["imported_"+kt] = data
		s.Printf("[OK] %s key imported successfully.\n", strings.ToUpper(kt))
	default:
		return errors.New("Invalid key subcommand. Available subcommands: 'generate rsa', 'zeroize rsa'.")
	}
	return nil
}

func cryptoCertificate(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Subcommand required. Use 'generate' to create keys, or 'zeroize' to delete certificates.")
	}
	if len(args) < 2 {
		switch args[0] {
		case "generate", "request", "import":
			return fmt.Errorf("Certificate name required. Use 'crypto certificate %s <name>'.", args[0])
		}
	}
	switch args[0] {
	case "generate":
		name := args[1]
		s.Config.Certificates[name] = pem("CERTIFICATE",
			"Subject: CN="+keyName(s.Config)+"\nIssuer: Self Signed\nValid: 1 year")
		s.Printf("[OK] Self-signed certificate '%s' generated successfully.\n", name)
	case "request":
		name := args[1]
		s.Printf("Certificate signing request for '%s' generated:\n", name)
		s.Println(pem("CERTIFICATE REQUEST",
			"Subject: CN="+keyName(s.Config)+"\nOrganization: "+name+"\nKey Type: RSA 2048"))
	case "import":
		name := args[1]
		s.Println("Enter the certificate data (paste the certificate content, end with a blank line):")
		data, err := readBlock(s)
		if err != nil {
			return fmt.Errorf("Failed to import certificate: %w", err)
		}
		if !strings.HasPrefix(data, "-----BEGIN") {
			body := "Imported certificate for: " + name
			if data != "" {
				body = data
			}
			data = pem("CERTIFICATE", body)
		}
		s.Config.Certificates[name] = data
		s.Printf("[OK] Certificate '%s' imported successfully.\n", name)
	default:
		return errors.New("Invalid certificate subcommand. Available subcommands: 'generate', 'request', 'import'.")
	}
	return nil
}

// noCrypto removes what a "crypto ..." command configured.
func noCrypto(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'no crypto' commands are only available in Global Configuration mode.")
	}
	if len(args) == 0 {
		return errors.New("Crypto command to negate required")
	}
	switch args[0] {
	case "dynamic-map":
		if len(args) < 2 {
			return errors.New("Dynamic map name required")
		}
		if _, ok := s.Config.CryptoDynamicMaps[args[1]]; !ok {
			return errors.New("Dynamic map not found")
		}
		delete(s.Config.CryptoDynamicMaps, args[1])
		s.Printf("Removed dynamic map '%s'\n", args[1])
	case "engine":
		if len(args) < 2 || args[1] != "accelerator" {
			return errors.New("Invalid engine command to negate")
		}
		s.Config.CryptoEngineAccelerator = nil
		s.Println("Disabled IPSec accelerator")
	case "ipsec":
		return noCryptoIPSec(args[1:], s)
	case "map":
		if len(args) < 2 {
			return errors.New("Map name required")
		}
		name := args[1]
		if slices.Contains(args[2:], "local-address") {
			if _, ok := s.Config.CryptoLocalAddresses[name]; !ok {
				return errors.New("Crypto map local address not found")
			}
			delete(s.Config.CryptoLocalAddresses, name)
			s.Printf("Removed local address for crypto map '%s'\n", name)
			return nil
		}
		if _, ok := s.Config.CryptoMaps[name]; !ok {
			return errors.New("Crypto map not found")
		}
		delete(s.Config.CryptoMaps, name)
		delete(s.Config.CryptoLocalAddresses, name)
		s.Printf("Removed crypto map '%s'\n", name)
	default:
		return errors.New("Invalid crypto command to negate")
	}
	return nil
}

func noCryptoIPSec(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Invalid ipsec command to negate")
	}
	switch args[0] {
	case "security-association":
		if len(args) != 3 || args[1] != "lifetime" {
			return errors.New("Usage: no crypto ipsec security-association lifetime {seconds | kilobytes}")
		}
		switch args[2] {
		case "seconds":
			s.Config.CryptoIPSecLifetime.Seconds = nil
		case "kilobytes":
			s.Config.CryptoIPSecLifetime.Kilobytes = nil
		default:
			return errors.New("Invalid lifetime parameter")
		}
		s.Printf("Reset IPSec security association lifetime %s to default\n", args[2])
	case "transform-set":
		if len(args) < 2 {
			return errors.New("Transform set name required")
		}
		if _, ok := s.Config.CryptoTransformSets[args[1]]; !ok {
			return errors.New("Transform set not found")
		}
		delete(s.Config.CryptoTransformSets, args[1])
		s.Printf("Removed transform set '%s'\n", args[1])
	default:
		return errors.New("Invalid ipsec command to negate")
	}
	return nil
}
