package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringAccount is the keychain account under which the bot token is stored.
const KeyringAccount = "bot_token"

// keyringGet is swapped in tests.
var keyringGet = keyring.Get

func resolveToken(tg *TelegramConfig) error {
	tg.Token = strings.TrimSpace(tg.Token)
	if tg.Token != "" {
		return nil
	}
	service := strings.TrimSpace(tg.TokenKeyring)
	if service == "" {
		return fmt.Errorf("telegram token is required")
	}
	token, err := keyringGet(service, KeyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("telegram token not found in keyring service %q", service)
		}
		return fmt.Errorf("read telegram token from keyring: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("telegram token in keyring service %q is empty", service)
	}
	tg.Token = token
	return nil
}
