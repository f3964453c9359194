package app

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const adminTokenFile = "admin.token"

// loadOrInitAdminToken returns override when set. Otherwise it reads
// <dataDir>/admin.token, generating and writing one on first use.
func loadOrInitAdminToken(dataDir, override string) (token string, created bool, err error) {
	if override = strings.TrimSpace(override); override != "" {
		return override, false, nil
	}

	path := filepath.Join(dataDir, adminTokenFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("read admin token: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", false, fmt.Errorf("generate admin token: %w", err)
	}
	token = hex.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return "", false, fmt.Errorf("write admin token: %w", err)
	}
	return token, true, nil
}
