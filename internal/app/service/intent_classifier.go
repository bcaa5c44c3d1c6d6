package service

import (
	"regexp"

	"balance_assistant/internal/app/port"
	"balance_assistant/internal/domain/entity"
)

// DefaultBalancePatterns are the phrasings that mark a message as a balance check.
var DefaultBalancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)check.*balance`),
	regexp.MustCompile(`(?i)token.*balance`),
	regexp.MustCompile(`(?i)balance.*check`),
	regexp.MustCompile(`(?i)how much.*token`),
	regexp.MustCompile(`(?i)token.*amount`),
}

// addressTokenPattern captures the hex run after 0x and the rest of the word it sits in.
var addressTokenPattern = regexp.MustCompile(`0x([0-9a-fA-F]{40,})([0-9A-Za-z_]*)`)

const (
	addressHexDigits = entity.AddressLength - 2
	hashHexDigits    = 64
)

// IntentClassifierImpl implements port.IntentClassifier over a fixed pattern set.
type IntentClassifierImpl struct {
	patterns []*regexp.Regexp
}

// NewIntentClassifier returns a classifier for patterns, or DefaultBalancePatterns if none are given.
func NewIntentClassifier(patterns ...*regexp.Regexp) port.IntentClassifier {
	if len(patterns) == 0 {
		patterns = DefaultBalancePatterns
	}
	return &IntentClassifierImpl{patterns: append([]*regexp.Regexp(nil), patterns...)}
}

// Classify reports a balance intent when any pattern matches and the message
// carries at least two addresses. The first address is taken as the token
// contract and the second as the wallet.
func (c *IntentClassifierImpl) Classify(message string) entity.BalanceIntent {
	if !c.hasBalancePhrase(message) {
		return entity.NoBalanceIntent
	}

	addresses := ExtractAddresses(message)
	if len(addresses) < 2 {
		return entity.NoBalanceIntent
	}

	return entity.BalanceIntent{
		Matched:         true,
		ContractAddress: addresses[0],
		WalletAddress:   addresses[1],
	}
}

func (c *IntentClassifierImpl) hasBalancePhrase(message string) bool {
	for _, p := range c.patterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}

// ExtractAddresses returns every address-shaped substring in order of appearance.
// A longer hex run that ends the word (a transaction hash, a typo) is dropped
// rather than cut down into a valid-looking address. A run that continues into
// non-hex letters is an address glued to a word, as in "0x…eB48and".
func ExtractAddresses(message string) []string {
	var addresses []string
	for _, m := range addressTokenPattern.FindAllStringSubmatch(message, -1) {
		hexRun, rest := m[1], m[2]
		glued := rest != "" && len(hexRun) < hashHexDigits
		if len(hexRun) != addressHexDigits && !glued {
			continue
		}
		addresses = append(addresses, "0x"+hexRun[:addressHexDigits])
	}
	return addresses
}
