package shared

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envClientID     = "SPOTIFY_CLIENT_ID"
	envClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Credentials is the client identifier/secret pair used for the client-credentials grant.
//
// Values are loaded once at startup and passed by value; nothing mutates them afterwards.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Validate reports [ErrMissingCredentials] when either half of the pair is blank.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("%w: client_id is empty", ErrMissingCredentials)
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("%w: client_secret is empty", ErrMissingCredentials)
	}
	return nil
}

// String masks the secret so credentials can be logged.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{ClientID: %s, ClientSecret: %s}", c.ClientID, Mask(c.ClientSecret))
}

// Mask hides all but the last four characters of s.
func Mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// LoadProperties reads a key=value properties file with client_id and client_secret keys.
func LoadProperties(path string) (Credentials, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	creds := Credentials{
		ClientID:     values["client_id"],
		ClientSecret: values["client_secret"],
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return creds, nil
}

// ResolveCredentials picks the credential pair for this process.
//
// Precedence: explicit properties path, then the config's properties_path, then the config's inline values.
// SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET override whichever source was chosen.
func ResolveCredentials(config *Config, propertiesPath string) (Credentials, error) {
	if propertiesPath == "" && config != nil {
		propertiesPath = config.Credentials.Spotify.PropertiesPath
	}

	var creds Credentials
	if propertiesPath != "" {
		loaded, err := LoadProperties(propertiesPath)
		if err != nil && !envComplete() {
			return Credentials{}, err
		}
		creds = loaded
	} else if config != nil {
		creds = Credentials{
			ClientID:     config.Credentials.Spotify.ClientID,
			ClientSecret: config.Credentials.Spotify.ClientSecret,
		}
	}

	if v := os.Getenv(envClientID); v != "" {
		creds.ClientID = v
	}
	if v := os.Getenv(envClientSecret); v != "" {
		creds.ClientSecret = v
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func envComplete() bool {
	return os.Getenv(envClientID) != "" && os.Getenv(envClientSecret) != ""
}
