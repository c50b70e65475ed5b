package pkcs12

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPEMRejectsGarbage(t *testing.T) {
	_, err := ToPEM([]byte("not a pfx"), "secret")
	assert.Error(t, err)

	_, err = TLSCertificate([]byte("not a pfx"), "secret")
	assert.Error(t, err)
}

func TestLoadTLSConfigMissingFile(t *testing.T) {
	_, err := LoadTLSConfig(filepath.Join(t.TempDir(), "missing.pfx"), "")
	assert.ErrorContains(t, err, "read pfx")
}
