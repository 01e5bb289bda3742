package googleapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/rhk9003/metaads/internal/config"
	"github.com/rhk9003/metaads/internal/domain"
)

// CredentialMode records which kind of identity the resolver produced.
// Mail-send only works in OAuth mode: a service account cannot send mail
// as a real mailbox.
type CredentialMode string

const (
	CredentialOAuth          CredentialMode = "oauth"
	CredentialServiceAccount CredentialMode = "service_account"
)

// Scopes required by the intake flow. gmail.send is added only in OAuth
// mode.
var baseScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/documents",
}

const gmailSendScope = "https://www.googleapis.com/auth/gmail.send"

// Credentials is the resolved identity used to build all API clients.
type Credentials struct {
	Mode        CredentialMode
	TokenSource oauth2.TokenSource
	Source      string // which configuration source matched, for logging
}

// ResolveCredentials produces one authenticated identity from the first
// matching configuration source. Order, first match wins:
//
//  1. OAuth refresh token + client id/secret (env)
//  2. service-account block in the YAML config file
//  3. raw service-account JSON string (env)
//  4. flat service-account fields (env)
//  5. key file at the configured local path
//  6. any JSON file in the working directory whose "type" field is
//     "service_account"
//
// The ordering exists because deployment environments vary (hosted secrets
// vs. a local key file), and OAuth must win when present because only it
// unlocks mail-send.
func ResolveCredentials(ctx context.Context, cfg *config.Config, fileCfg *config.FileConfig, logger *slog.Logger) (*Credentials, error) {
	// 1. user-delegated OAuth
	if cfg.OAuthClientID != "" && cfg.OAuthClientSecret != "" && cfg.OAuthRefreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       append(append([]string{}, baseScopes...), gmailSendScope),
		}
		ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.OAuthRefreshToken})
		return &Credentials{
			Mode:        CredentialOAuth,
			TokenSource: oauth2.ReuseTokenSource(nil, ts),
			Source:      "oauth refresh token",
		}, nil
	}

	// 2. structured block from the YAML config file
	if fileCfg != nil && len(fileCfg.ServiceAccount) > 0 {
		data, err := json.Marshal(fileCfg.ServiceAccount)
		if err != nil {
			return nil, fmt.Errorf("encode service_account block: %w", err)
		}
		return serviceAccountCredentials(ctx, data, "config file service_account block")
	}

	// 3. raw JSON string
	if cfg.ServiceAccountJSON != "" {
		return serviceAccountCredentials(ctx, []byte(cfg.ServiceAccountJSON), "GOOGLE_SERVICE_ACCOUNT_JSON")
	}

	// 4. flat fields
	if cfg.SAClientEmail != "" && cfg.SAPrivateKey != "" {
		conf := &jwt.Config{
			Email: cfg.SAClientEmail,
			// Private keys pasted through env often arrive with
			// literal "\n" sequences
			PrivateKey: []byte(strings.ReplaceAll(cfg.SAPrivateKey, `\n`, "\n")),
			TokenURL:   google.JWTTokenURL,
			Scopes:     baseScopes,
		}
		return &Credentials{
			Mode:        CredentialServiceAccount,
			TokenSource: conf.TokenSource(ctx),
			Source:      "flat service-account fields",
		}, nil
	}

	// 5. key file at the configured path
	if data, err := os.ReadFile(cfg.CredentialsFile); err == nil {
		return serviceAccountCredentials(ctx, data, "key file "+cfg.CredentialsFile)
	}

	// 6. working-directory scan for any service-account key
	if creds, err := scanForKeyFile(ctx, "."); err == nil {
		return creds, nil
	} else if logger != nil {
		logger.Debug("working-directory key scan found nothing", "error", err)
	}

	return nil, &domain.SetupError{
		Message: "no usable Google credentials: set GOOGLE_OAUTH_* variables, a service-account source, or place a key file in the working directory",
	}
}

// serviceAccountCredentials builds a JWT token source from key JSON.
func serviceAccountCredentials(ctx context.Context, keyJSON []byte, source string) (*Credentials, error) {
	conf, err := google.JWTConfigFromJSON(keyJSON, baseScopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service-account key from %s: %w", source, err)
	}
	return &Credentials{
		Mode:        CredentialServiceAccount,
		TokenSource: conf.TokenSource(ctx),
		Source:      source,
	}, nil
}

// scanForKeyFile looks for any JSON file in dir whose "type" field equals
// "service_account". First match wins, in directory order.
func scanForKeyFile(ctx context.Context, dir string) (*Credentials, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var probe struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(data, &probe) != nil || probe.Type != "service_account" {
			continue
		}

		return serviceAccountCredentials(ctx, data, "scanned key file "+path)
	}

	return nil, fmt.Errorf("no service-account key file in %s", dir)
}
