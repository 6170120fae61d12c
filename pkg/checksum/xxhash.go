package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FileChecksum returns the xxhash fingerprint of a file's content. It is
// logged before parsing so two runs over the same inputs can be compared.
func FileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to copy file content to hasher for file %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// RowHash fingerprints a single table row.
func RowHash(fields []string) string {
	digest := xxhash.New()
	digest.WriteString(strings.Join(fields, ";"))

	return hex.EncodeToString(digest.Sum(nil))
}

// TableHash fingerprints an entire table, row order included. Two tables
// hash equal only when they are cell-for-cell identical in the same order.
func TableHash(rows [][]string) string {
	digest := xxhash.New()
	for _, fields := range rows {
		digest.WriteString(strings.Join(fields, ";"))
		digest.WriteString("\n")
	}

	return hex.EncodeToString(digest.Sum(nil))
}
