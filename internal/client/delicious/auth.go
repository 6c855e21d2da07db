package delicious

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// AuthMethod produces the credential material attached to a single
// outbound request. Credentials are never transmitted outside the request
// being built.
type AuthMethod interface {
	Apply(*http.Request)
}

type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type credentialsFile struct {
	Delicious Credentials `yaml:"delicious"`
}

// LoadCredentials resolves credentials from the environment first
// (DLCS_USERNAME/DLCS_PASSWORD), then from the credentials file in the
// user config directory.
func LoadCredentials() (*Credentials, error) {
	if username := os.Getenv("DLCS_USERNAME"); username != "" {
		password := os.Getenv("DLCS_PASSWORD")
		if password == "" {
			return nil, fmt.Errorf("DLCS_USERNAME set but DLCS_PASSWORD is missing")
		}
		return &Credentials{Username: username, Password: password}, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}

	credentialsPath := filepath.Join(configDir, "dlcs", "credentials.yaml")

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no credentials found: set DLCS_USERNAME/DLCS_PASSWORD environment variables or create %s", credentialsPath)
		}
		return nil, fmt.Errorf("failed to read credentials file %s: %w", credentialsPath, err)
	}

	if info, err := os.Stat(credentialsPath); err == nil && info.Mode().Perm() > 0600 {
		fmt.Fprintf(os.Stderr, "Warning: credentials file %s has overly permissive permissions (%o), consider chmod 600\n", credentialsPath, info.Mode().Perm())
	}

	var file credentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if file.Delicious.Username == "" || file.Delicious.Password == "" {
		return nil, fmt.Errorf("incomplete credentials in %s: both username and password are required", credentialsPath)
	}

	return &file.Delicious, nil
}
